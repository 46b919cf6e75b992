// Package tools provides invokable tools and their capability declarations.
package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/ucplabs/ucp/registry"
)

// Tool represents an executable tool an agent can expose.
type Tool interface {
	// Name returns the tool name.
	Name() string
	// Description returns a human-readable description.
	Description() string
	// Parameters maps parameter names to a type/description hint.
	Parameters() map[string]string
	// RequiredPermissions lists permissions needed to invoke the tool.
	RequiredPermissions() []string
	// Invoke runs the tool with the given arguments.
	Invoke(ctx context.Context, args map[string]string) (string, error)
}

// Capability builds the registry declaration for a tool. Orchestration
// code registers one of these per tool before making the tool
// discoverable.
func Capability(t Tool, typ registry.Type) registry.Capability {
	return registry.Capability{
		Name:                t.Name(),
		Type:                typ,
		Description:         t.Description(),
		Parameters:          t.Parameters(),
		RequiredPermissions: t.RequiredPermissions(),
	}
}

// --- Weather tool ---

// WeatherTool reports canned weather conditions for a location. It is a
// stand-in data source for demos; no network access.
type WeatherTool struct{}

// NewWeatherTool creates the weather tool.
func NewWeatherTool() *WeatherTool {
	return &WeatherTool{}
}

// conditions are rotated by location name length for stable, varied output.
var conditions = []string{
	"sunny, 24°C",
	"partly cloudy, 18°C",
	"light rain, 14°C",
	"overcast, 16°C",
	"clear skies, 21°C",
}

// Name implements Tool.
func (w *WeatherTool) Name() string { return "get_weather" }

// Description implements Tool.
func (w *WeatherTool) Description() string {
	return "Report current weather conditions for a city"
}

// Parameters implements Tool.
func (w *WeatherTool) Parameters() map[string]string {
	return map[string]string{
		"location": "string: city name",
	}
}

// RequiredPermissions implements Tool.
func (w *WeatherTool) RequiredPermissions() []string { return nil }

// Invoke implements Tool.
func (w *WeatherTool) Invoke(ctx context.Context, args map[string]string) (string, error) {
	location := strings.TrimSpace(args["location"])
	if location == "" {
		return "", fmt.Errorf("location is required")
	}

	condition := conditions[len(location)%len(conditions)]
	return fmt.Sprintf("The weather in %s is %s.", location, condition), nil
}
