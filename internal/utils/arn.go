package utils

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
)

// TargetGroupName extracts <name> from a target group ARN of the form
// arn:aws:elasticloadbalancing:<region>:<account>:targetgroup/<name>/<id>.
// Returns the input unchanged if it is not a target group ARN.
func TargetGroupName(s string) string {
	a, err := arn.Parse(s)
	if err != nil {
		return s
	}
	parts := strings.Split(a.Resource, "/")
	if len(parts) == 3 && parts[0] == "targetgroup" && parts[1] != "" {
		return parts[1]
	}
	return s
}
