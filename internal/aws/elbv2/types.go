package elbv2

// TargetGroup is a target group attached to an ALB or NLB.
type TargetGroup struct {
	Name       string
	ARN        string
	TargetType string
}

// Target is one registered target of a target group.
type Target struct {
	ID     string
	Port   int
	Health string
}
