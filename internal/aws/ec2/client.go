package ec2

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"tasnim.dev/elb-inventory/internal/aws/awserr"
)

// StateRunning is the EC2 state name of an active instance.
const StateRunning = string(types.InstanceStateNameRunning)

type EC2API interface {
	DescribeInstances(ctx context.Context, params *awsec2.DescribeInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInstancesOutput, error)
}

type Client struct {
	api EC2API
}

func NewClient(api EC2API) *Client {
	return &Client{api: api}
}

// DescribeInstances returns the instances with the given IDs, flattened from
// their reservations in the order EC2 returns them. An empty id list makes
// no API call; EC2 would otherwise describe every instance in the region.
func (c *Client) DescribeInstances(ctx context.Context, ids []string) ([]EC2Instance, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	out, err := c.api.DescribeInstances(ctx, &awsec2.DescribeInstancesInput{
		InstanceIds: ids,
	})
	if err != nil {
		return nil, awserr.Wrap("DescribeInstances", err)
	}

	var instances []EC2Instance
	for _, reservation := range out.Reservations {
		for _, inst := range reservation.Instances {
			var state string
			if inst.State != nil {
				state = string(inst.State.Name)
			}
			instances = append(instances, EC2Instance{
				InstanceID: aws.ToString(inst.InstanceId),
				State:      state,
				PublicDNS:  aws.ToString(inst.PublicDnsName),
				PublicIP:   aws.ToString(inst.PublicIpAddress),
				PrivateIP:  aws.ToString(inst.PrivateIpAddress),
			})
		}
	}
	return instances, nil
}
