package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	awsclient "tasnim.dev/elb-inventory/internal/aws"
	"tasnim.dev/elb-inventory/internal/aws/awserr"
	"tasnim.dev/elb-inventory/internal/config"
	"tasnim.dev/elb-inventory/internal/inventory"
)

// ResolverFactory builds a resolver for a validated config.
type ResolverFactory func(ctx context.Context, cfg *config.Config) (*inventory.Resolver, error)

func NewInventoryCmd() *cobra.Command {
	return newInventoryCmd(newAWSResolver)
}

func newInventoryCmd(newResolver ResolverFactory) *cobra.Command {
	var list bool
	var host string

	cmd := &cobra.Command{
		Use:   "elb-inventory",
		Short: "Ansible dynamic inventory of running instances behind a load balancer",
		Long: `Ansible dynamic inventory of the running EC2 instances registered with one
load balancer.

The load balancer, its type and the region are read from
~/.config/elb-inventory/config.yaml (or $ELB_INVENTORY_CONFIG) and from
ELB_INVENTORY_* environment variables. AWS credentials come from the usual
SDK chain unless access keys are configured explicitly.

Examples:
  elb-inventory --list                 # {"web":{"hosts":[...]}}
  elb-inventory --host a.example.com   # {"ansible_ssh_host":"..."}`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().NFlag() == 0 {
				return cmd.Help()
			}
			if !list && host == "" {
				return errors.New("one of --list or --host <hostname> is required")
			}
			cmd.SilenceUsage = true

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			initLogging(cfg.Verbosity)

			ctx := cmd.Context()
			resolver, err := newResolver(ctx, cfg)
			if err != nil {
				return err
			}

			instances, err := resolver.RunningInstances(ctx, cfg.LoadBalancer)
			if err != nil {
				return err
			}

			var doc any
			if list {
				doc = inventory.ListInventory(instances)
			} else {
				doc = inventory.HostInventory(instances, host)
			}
			return inventory.Write(cmd.OutOrStdout(), doc)
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "List running hosts behind the load balancer")
	cmd.Flags().StringVar(&host, "host", "", "Get connection variables for one running host")
	cmd.MarkFlagsMutuallyExclusive("list", "host")

	return cmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg.Merge(config.NewEnv())
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// initLogging points klog at the configured verbosity. Logs go to stderr;
// stdout is reserved for inventory JSON.
func initLogging(verbosity int) {
	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	_ = fs.Set("logtostderr", "true")
	_ = fs.Set("v", strconv.Itoa(verbosity))
}

func newAWSResolver(ctx context.Context, cfg *config.Config) (*inventory.Resolver, error) {
	client, err := awsclient.NewServiceClient(ctx, cfg.AWSOptions())
	if err != nil {
		return nil, fmt.Errorf("initializing AWS client: %w", err)
	}

	members, err := client.Members(cfg.Type())
	if err != nil {
		return nil, err
	}
	klog.V(1).InfoS("Querying load balancer", "loadBalancer", cfg.LoadBalancer, "type", cfg.Type(), "region", cfg.Region)

	return inventory.NewResolver(members, client.EC2), nil
}

// ErrorMessage renders err for stderr. Provider failures keep the AWS
// message and error code verbatim.
func ErrorMessage(err error) string {
	var pe *awserr.ProviderError
	if errors.As(err, &pe) {
		return fmt.Sprintf("Something went wrong: %s | error_code: %s", pe.Message, pe.Code)
	}
	return "Error: " + err.Error()
}
