// Package inventory resolves the running instances behind a load balancer
// and shapes them into Ansible dynamic-inventory JSON.
package inventory

import (
	"context"
	"errors"

	"k8s.io/klog/v2"

	"tasnim.dev/elb-inventory/internal/aws/ec2"
)

// MemberLister returns the instance IDs registered with a load balancer.
type MemberLister interface {
	MembersOf(ctx context.Context, name string) ([]string, error)
}

// InstanceDescriber returns full descriptions for a set of instance IDs.
type InstanceDescriber interface {
	DescribeInstances(ctx context.Context, ids []string) ([]ec2.EC2Instance, error)
}

type Resolver struct {
	lbs       MemberLister
	instances InstanceDescriber
}

func NewResolver(lbs MemberLister, instances InstanceDescriber) *Resolver {
	return &Resolver{lbs: lbs, instances: instances}
}

// RunningInstances returns the members of the load balancer that are in the
// running state, in the order the instance API returned them.
func (r *Resolver) RunningInstances(ctx context.Context, loadBalancer string) ([]ec2.EC2Instance, error) {
	if loadBalancer == "" {
		return nil, errors.New("load balancer name is empty")
	}

	ids, err := r.lbs.MembersOf(ctx, loadBalancer)
	if err != nil {
		return nil, err
	}
	klog.V(2).InfoS("Resolved load balancer members", "loadBalancer", loadBalancer, "members", len(ids))

	if len(ids) == 0 {
		return []ec2.EC2Instance{}, nil
	}

	described, err := r.instances.DescribeInstances(ctx, ids)
	if err != nil {
		return nil, err
	}

	running := make([]ec2.EC2Instance, 0, len(described))
	for _, inst := range described {
		if inst.IsRunning() {
			running = append(running, inst)
		}
	}
	klog.V(1).InfoS("Resolved running instances", "loadBalancer", loadBalancer, "described", len(described), "running", len(running))
	return running, nil
}
