package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	awselbsdk "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"

	awsec2 "tasnim.dev/elb-inventory/internal/aws/ec2"
	awselb "tasnim.dev/elb-inventory/internal/aws/elb"
	awselbv2 "tasnim.dev/elb-inventory/internal/aws/elbv2"
)

// LoadBalancerType selects which ELB API owns a load balancer.
type LoadBalancerType string

const (
	LoadBalancerClassic     LoadBalancerType = "classic"
	LoadBalancerApplication LoadBalancerType = "application"
	LoadBalancerNetwork     LoadBalancerType = "network"
)

// ParseLoadBalancerType accepts the type names case-insensitively.
// An empty string means classic.
func ParseLoadBalancerType(s string) (LoadBalancerType, error) {
	switch t := LoadBalancerType(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return LoadBalancerClassic, nil
	case LoadBalancerClassic, LoadBalancerApplication, LoadBalancerNetwork:
		return t, nil
	default:
		return "", fmt.Errorf("unknown load balancer type %q (want classic, application or network)", s)
	}
}

// MemberLister returns the instance IDs registered with a load balancer.
type MemberLister interface {
	MembersOf(ctx context.Context, name string) ([]string, error)
}

type ServiceClient struct {
	EC2   *awsec2.Client
	ELB   *awselb.Client
	ELBv2 *awselbv2.Client
}

func NewServiceClient(ctx context.Context, opts Options) (*ServiceClient, error) {
	cfg, err := LoadConfig(ctx, opts)
	if err != nil {
		return nil, err
	}

	return &ServiceClient{
		EC2:   awsec2.NewClient(ec2.NewFromConfig(cfg)),
		ELB:   awselb.NewClient(awselbsdk.NewFromConfig(cfg)),
		ELBv2: awselbv2.NewClient(elbv2.NewFromConfig(cfg)),
	}, nil
}

// Members returns the membership source for the given load balancer type.
func (c *ServiceClient) Members(t LoadBalancerType) (MemberLister, error) {
	switch t {
	case LoadBalancerClassic, "":
		return c.ELB, nil
	case LoadBalancerApplication, LoadBalancerNetwork:
		return c.ELBv2, nil
	default:
		return nil, fmt.Errorf("unknown load balancer type %q", t)
	}
}
