// Package elb resolves membership of classic Elastic Load Balancers.
package elb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awselb "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"

	"tasnim.dev/elb-inventory/internal/aws/awserr"
)

type ELBAPI interface {
	DescribeLoadBalancers(ctx context.Context, params *awselb.DescribeLoadBalancersInput, optFns ...func(*awselb.Options)) (*awselb.DescribeLoadBalancersOutput, error)
}

type Client struct {
	api ELBAPI
}

func NewClient(api ELBAPI) *Client {
	return &Client{api: api}
}

// MembersOf returns the IDs of the instances registered with the named
// classic load balancer, in the order the service lists them.
func (c *Client) MembersOf(ctx context.Context, name string) ([]string, error) {
	out, err := c.api.DescribeLoadBalancers(ctx, &awselb.DescribeLoadBalancersInput{
		LoadBalancerNames: []string{name},
	})
	if err != nil {
		return nil, awserr.Wrap("DescribeLoadBalancers", err)
	}
	if len(out.LoadBalancerDescriptions) == 0 {
		return nil, awserr.New("DescribeLoadBalancers", "LoadBalancerNotFound",
			fmt.Sprintf("load balancer '%s' not found", name))
	}

	desc := out.LoadBalancerDescriptions[0]
	ids := make([]string, 0, len(desc.Instances))
	for _, inst := range desc.Instances {
		if id := aws.ToString(inst.InstanceId); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
