// Package discovery registers the service with a Consul agent.
package discovery

import (
	"fmt"
	"net"
	"strconv"

	consulapi "github.com/hashicorp/consul/api"
)

// ConsulConfig holds the Consul agent address and the identity the service registers under.
type ConsulConfig struct {
	Addr      string `env:"ADDR"`
	ServiceID string `env:"SERVICE_ID"`
}

// Enabled reports whether an agent address was configured.
func (c ConsulConfig) Enabled() bool {
	return c.Addr != ""
}

// Registration describes the service instance being announced.
type Registration struct {
	ID        string
	Name      string
	Host      string
	Port      int
	HealthURL string
	Tags      []string
}

// Registrar registers and deregisters service instances.
type Registrar struct {
	agent *consulapi.Agent
}

// NewRegistrar creates a Registrar talking to the agent at cfg.Addr.
func NewRegistrar(cfg ConsulConfig) (*Registrar, error) {
	consulCfg := consulapi.DefaultConfig()
	consulCfg.Address = cfg.Addr

	client, err := consulapi.NewClient(consulCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}

	return &Registrar{agent: client.Agent()}, nil
}

// Register announces reg with an HTTP health check against reg.HealthURL.
func (r *Registrar) Register(reg Registration) error {
	return r.agent.ServiceRegister(NewServiceRegistration(reg))
}

// Deregister removes the service instance with the given id.
func (r *Registrar) Deregister(id string) error {
	return r.agent.ServiceDeregister(id)
}

// NewServiceRegistration converts reg to the agent payload.
func NewServiceRegistration(reg Registration) *consulapi.AgentServiceRegistration {
	id := reg.ID
	if id == "" {
		id = reg.Name + "-" + net.JoinHostPort(reg.Host, strconv.Itoa(reg.Port))
	}

	return &consulapi.AgentServiceRegistration{
		ID:      id,
		Name:    reg.Name,
		Address: reg.Host,
		Port:    reg.Port,
		Tags:    reg.Tags,
		Check: &consulapi.AgentServiceCheck{
			HTTP:                           reg.HealthURL,
			Interval:                       "10s",
			Timeout:                        "2s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}
}
