package elbv2

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
	"k8s.io/klog/v2"

	"tasnim.dev/elb-inventory/internal/aws/awserr"
	"tasnim.dev/elb-inventory/internal/utils"
)

type ELBAPI interface {
	DescribeLoadBalancers(ctx context.Context, params *elbv2.DescribeLoadBalancersInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeLoadBalancersOutput, error)
	DescribeTargetGroups(ctx context.Context, params *elbv2.DescribeTargetGroupsInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeTargetGroupsOutput, error)
	DescribeTargetHealth(ctx context.Context, params *elbv2.DescribeTargetHealthInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeTargetHealthOutput, error)
}

type Client struct {
	api ELBAPI
}

func NewClient(api ELBAPI) *Client {
	return &Client{api: api}
}

// MembersOf returns the IDs of EC2 instances registered in any instance-type
// target group of the named ALB/NLB, de-duplicated in first-seen order.
func (c *Client) MembersOf(ctx context.Context, name string) ([]string, error) {
	lbARN, err := c.loadBalancerARN(ctx, name)
	if err != nil {
		return nil, err
	}

	tgs, err := c.ListTargetGroups(ctx, lbARN)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var ids []string
	for _, tg := range tgs {
		if tg.TargetType != string(elbtypes.TargetTypeEnumInstance) {
			klog.V(2).InfoS("Skipping non-instance target group", "targetGroup", tg.Name, "targetType", tg.TargetType)
			continue
		}

		targets, err := c.ListTargets(ctx, tg.ARN)
		if err != nil {
			return nil, err
		}
		klog.V(2).InfoS("Listed target group", "targetGroup", tg.Name, "targets", len(targets))

		for _, t := range targets {
			if t.ID != "" && !seen[t.ID] {
				seen[t.ID] = true
				ids = append(ids, t.ID)
			}
		}
	}
	return ids, nil
}

func (c *Client) loadBalancerARN(ctx context.Context, name string) (string, error) {
	out, err := c.api.DescribeLoadBalancers(ctx, &elbv2.DescribeLoadBalancersInput{
		Names: []string{name},
	})
	if err != nil {
		return "", awserr.Wrap("DescribeLoadBalancers", err)
	}
	if len(out.LoadBalancers) == 0 {
		return "", awserr.New("DescribeLoadBalancers", "LoadBalancerNotFound", "load balancer '"+name+"' not found")
	}
	return aws.ToString(out.LoadBalancers[0].LoadBalancerArn), nil
}

func (c *Client) ListTargetGroups(ctx context.Context, lbARN string) ([]TargetGroup, error) {
	var tgs []TargetGroup
	var marker *string

	for {
		out, err := c.api.DescribeTargetGroups(ctx, &elbv2.DescribeTargetGroupsInput{
			LoadBalancerArn: aws.String(lbARN),
			Marker:          marker,
		})
		if err != nil {
			return nil, awserr.Wrap("DescribeTargetGroups", err)
		}

		for _, tg := range out.TargetGroups {
			arn := aws.ToString(tg.TargetGroupArn)
			name := aws.ToString(tg.TargetGroupName)
			if name == "" {
				name = utils.TargetGroupName(arn)
			}
			tgs = append(tgs, TargetGroup{
				Name:       name,
				ARN:        arn,
				TargetType: string(tg.TargetType),
			})
		}

		if out.NextMarker == nil {
			break
		}
		marker = out.NextMarker
	}
	return tgs, nil
}

func (c *Client) ListTargets(ctx context.Context, targetGroupARN string) ([]Target, error) {
	out, err := c.api.DescribeTargetHealth(ctx, &elbv2.DescribeTargetHealthInput{
		TargetGroupArn: aws.String(targetGroupARN),
	})
	if err != nil {
		return nil, awserr.Wrap("DescribeTargetHealth", err)
	}

	targets := make([]Target, 0, len(out.TargetHealthDescriptions))
	for _, th := range out.TargetHealthDescriptions {
		t := Target{}
		if th.Target != nil {
			t.ID = aws.ToString(th.Target.Id)
			t.Port = int(aws.ToInt32(th.Target.Port))
		}
		if th.TargetHealth != nil {
			t.Health = string(th.TargetHealth.State)
		}
		targets = append(targets, t)
	}
	return targets, nil
}
