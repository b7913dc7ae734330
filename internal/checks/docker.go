package checks

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/thand-io/opskit/internal/common"
)

var imageTagPattern = regexp.MustCompile(`^[\w.-]+/[\w.-]+:[\w.-]+$`)

type PortMapping struct {
	HostPort      string `json:"host_port"`
	ContainerPort string `json:"container_port"`
}

// DockerfileInstructions returns the leading keyword of every non-blank
// line, in file order.
func DockerfileInstructions(content string) []string {
	instructions := []string{}
	for line := range strings.Lines(content) {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		instructions = append(instructions, fields[0])
	}
	return instructions
}

func FormatImageTag(registry string, image string, tag string) string {
	return fmt.Sprintf("%s/%s:%s", registry, image, tag)
}

// IsValidImageTag checks for the registry/image:tag form.
func IsValidImageTag(tag string) bool {
	return imageTagPattern.MatchString(tag)
}

// ParsePortMapping splits a "host:container" mapping such as "8080:80".
func ParsePortMapping(mapping string) (PortMapping, error) {
	host, container, found := strings.Cut(mapping, ":")
	if !found {
		return PortMapping{}, fmt.Errorf("port mapping %q must be host:container", mapping)
	}
	if !common.IsAllDigits(host) || !common.IsAllDigits(container) {
		return PortMapping{}, fmt.Errorf("port mapping %q must contain numeric ports", mapping)
	}
	return PortMapping{
		HostPort:      host,
		ContainerPort: container,
	}, nil
}
