package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"fabric-mcp/internal/fabric"
)

// validator is implemented by argument types with required fields.
type validator interface {
	Validate() error
}

// decodeArgs converts the untyped MCP argument map into dst and validates it
// when dst implements validator. Type mismatches are reported as
// *fabric.ArgumentError naming the field.
func decodeArgs(args map[string]any, dst any) error {
	if args == nil {
		args = map[string]any{}
	}

	data, err := json.Marshal(args)
	if err != nil {
		return &fabric.ArgumentError{Field: "arguments", Reason: err.Error()}
	}

	if err := json.Unmarshal(data, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &fabric.ArgumentError{
				Field:  typeErr.Field,
				Reason: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
			}
		}
		return &fabric.ArgumentError{Field: "arguments", Reason: err.Error()}
	}

	if v, ok := dst.(validator); ok {
		return v.Validate()
	}
	return nil
}

func requireField(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &fabric.ArgumentError{Field: field, Reason: "is required"}
	}
	return nil
}

type pageArgs struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

func (a pageArgs) page() fabric.Page {
	return fabric.Page{Offset: a.Offset, Limit: a.Limit}
}

type portArgs struct {
	PortID string `json:"port_id"`
}

func (a *portArgs) Validate() error { return requireField("port_id", a.PortID) }

type connectionArgs struct {
	ConnectionID string `json:"connection_id"`
}

func (a *connectionArgs) Validate() error { return requireField("connection_id", a.ConnectionID) }

type searchConnectionsArgs struct {
	pageArgs
	Name      string `json:"name"`
	State     string `json:"state"`
	ProjectID string `json:"project_id"`
}

func (a searchConnectionsArgs) filter() fabric.ConnectionFilter {
	return fabric.ConnectionFilter{Name: a.Name, State: a.State, ProjectID: a.ProjectID}
}

type updateConnectionArgs struct {
	ConnectionID string `json:"connection_id"`
	fabric.UpdateConnectionRequest
}

func (a *updateConnectionArgs) Validate() error { return requireField("connection_id", a.ConnectionID) }

type listRoutersArgs struct {
	pageArgs
	Name      string `json:"name"`
	State     string `json:"state"`
	ProjectID string `json:"project_id"`
}

func (a listRoutersArgs) filter() fabric.RouterFilter {
	return fabric.RouterFilter{Name: a.Name, State: a.State, ProjectID: a.ProjectID}
}

type routerArgs struct {
	RouterID string `json:"router_id"`
}

func (a *routerArgs) Validate() error { return requireField("router_id", a.RouterID) }

type listServiceProfilesArgs struct {
	pageArgs
	MetroCode string `json:"metro_code"`
	Type      string `json:"type"`
	Name      string `json:"name"`
}

func (a listServiceProfilesArgs) filter() fabric.ServiceProfileFilter {
	return fabric.ServiceProfileFilter{MetroCode: a.MetroCode, Type: a.Type, Name: a.Name}
}

type serviceProfileArgs struct {
	ServiceProfileID string `json:"service_profile_id"`
}

func (a *serviceProfileArgs) Validate() error {
	return requireField("service_profile_id", a.ServiceProfileID)
}

type serviceTokenArgs struct {
	ServiceTokenID string `json:"service_token_id"`
}

func (a *serviceTokenArgs) Validate() error {
	return requireField("service_token_id", a.ServiceTokenID)
}
