package inventory

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gowebpki/jcs"

	"tasnim.dev/elb-inventory/internal/aws/ec2"
)

const (
	// GroupName is the single inventory group every running host lands in.
	GroupName = "web"
	// SSHHostVar is the host variable Ansible connects to.
	SSHHostVar = "ansible_ssh_host"
)

// Group is one inventory group in --list output.
type Group struct {
	Hosts []string `json:"hosts"`
}

// ListInventory builds the --list document from running instances.
func ListInventory(instances []ec2.EC2Instance) map[string]Group {
	hosts := make([]string, 0, len(instances))
	for _, inst := range instances {
		hosts = append(hosts, inst.PublicDNS)
	}
	return map[string]Group{GroupName: {Hosts: hosts}}
}

// FindByPublicDNS returns the first instance whose public DNS name is host.
func FindByPublicDNS(instances []ec2.EC2Instance, host string) (ec2.EC2Instance, bool) {
	for _, inst := range instances {
		if inst.PublicDNS == host {
			return inst, true
		}
	}
	return ec2.EC2Instance{}, false
}

// HostInventory builds the --host document. Unknown hosts yield an empty map.
func HostInventory(instances []ec2.EC2Instance, host string) map[string]string {
	inst, ok := FindByPublicDNS(instances, host)
	if !ok {
		return map[string]string{}
	}
	return map[string]string{SSHHostVar: inst.PublicIP}
}

// Write encodes v as compact RFC 8785 canonical JSON with no trailing newline.
func Write(w io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding inventory: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return fmt.Errorf("canonicalizing inventory: %w", err)
	}
	if _, err := w.Write(canonical); err != nil {
		return fmt.Errorf("writing inventory: %w", err)
	}
	return nil
}
