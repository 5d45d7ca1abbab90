package ec2

// EC2Instance represents a single EC2 instance as seen by the inventory.
type EC2Instance struct {
	InstanceID string
	State      string
	PublicDNS  string
	PublicIP   string
	PrivateIP  string
}

// IsRunning reports whether the instance is in the running state.
func (i EC2Instance) IsRunning() bool {
	return i.State == StateRunning
}
