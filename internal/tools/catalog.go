package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool names.
const (
	ToolListPorts           = "list_ports"
	ToolGetPort             = "get_port"
	ToolListConnections     = "list_connections"
	ToolSearchConnections   = "search_connections"
	ToolGetConnection       = "get_connection"
	ToolCreateConnection    = "create_connection"
	ToolUpdateConnection    = "update_connection"
	ToolDeleteConnection    = "delete_connection"
	ToolValidateConnection  = "validate_connection"
	ToolGetConnectionStats  = "get_connection_stats"
	ToolListRouters         = "list_routers"
	ToolGetRouter           = "get_router"
	ToolCreateRouter        = "create_router"
	ToolUpdateRouter        = "update_router"
	ToolDeleteRouter        = "delete_router"
	ToolListServiceProfiles = "list_service_profiles"
	ToolGetServiceProfile   = "get_service_profile"
	ToolCreateServiceToken  = "create_service_token"
	ToolListServiceTokens   = "list_service_tokens"
	ToolGetServiceToken     = "get_service_token"
	ToolDeleteServiceToken  = "delete_service_token"
)

// accessPointSchema describes the access point descriptor accepted for
// a_side, z_side and service token connections.
var accessPointSchema = map[string]any{
	"type": map[string]any{
		"type":        "string",
		"enum":        []string{"port", "virtual_device", "service_token", "service_profile"},
		"description": "Kind of access point",
	},
	"port_uuid": map[string]any{
		"type":        "string",
		"description": "Port UUID (type=port)",
	},
	"virtual_device_uuid": map[string]any{
		"type":        "string",
		"description": "Network Edge virtual device UUID (type=virtual_device)",
	},
	"service_token_uuid": map[string]any{
		"type":        "string",
		"description": "Service token UUID (type=service_token)",
	},
	"service_profile_uuid": map[string]any{
		"type":        "string",
		"description": "Service profile UUID (type=service_profile)",
	},
	"seller_metro_code": map[string]any{
		"type":        "string",
		"description": "Seller metro code, e.g. SV or NY (type=service_profile)",
	},
	"vlan": map[string]any{
		"type":        "integer",
		"minimum":     1,
		"maximum":     4094,
		"description": "VLAN tag; omit for untagged ports and cloud interfaces",
	},
}

func paginationOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("offset",
			mcp.Description("Index of the first result (default 0)"),
			mcp.Min(0),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default 20)"),
			mcp.Min(0),
		),
	}
}

func idTool(name, description, idField, idDescription string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(description),
		mcp.WithString(idField,
			mcp.Required(),
			mcp.Description(idDescription),
		),
	)
}

func connectionTool(name, description string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(description),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Connection type, e.g. EVPL_VC, EPL_VC, IP_VC"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Connection name"),
		),
		mcp.WithNumber("bandwidth",
			mcp.Required(),
			mcp.Description("Bandwidth in Mbps"),
			mcp.Min(1),
		),
		mcp.WithObject("a_side",
			mcp.Required(),
			mcp.Description("Originating access point"),
			mcp.Properties(accessPointSchema),
		),
		mcp.WithObject("z_side",
			mcp.Required(),
			mcp.Description("Destination access point"),
			mcp.Properties(accessPointSchema),
		),
		mcp.WithString("description",
			mcp.Description("Free-form description"),
		),
		mcp.WithArray("notifications",
			mcp.Description("Email addresses notified about connection events"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("redundancy",
			mcp.Description("Redundancy priority"),
			mcp.Enum("PRIMARY", "SECONDARY"),
		),
		mcp.WithString("project_id",
			mcp.Description("Project the connection belongs to"),
		),
	)
}

// Catalog returns the static metadata of every tool the server offers.
// The slice is rebuilt on every call and may be modified by the caller.
func Catalog() []mcp.Tool {
	return []mcp.Tool{
		// Ports
		mcp.NewTool(ToolListPorts, append([]mcp.ToolOption{
			mcp.WithDescription("List the ports available to the account"),
		}, paginationOptions()...)...),
		idTool(ToolGetPort, "Get details of a port", "port_id", "Port UUID"),

		// Connections
		mcp.NewTool(ToolListConnections, append([]mcp.ToolOption{
			mcp.WithDescription("List connections"),
		}, paginationOptions()...)...),
		mcp.NewTool(ToolSearchConnections, append([]mcp.ToolOption{
			mcp.WithDescription("Search connections by name, state or project"),
			mcp.WithString("name",
				mcp.Description("Substring of the connection name"),
			),
			mcp.WithString("state",
				mcp.Description("Equipment status, e.g. PROVISIONED"),
			),
			mcp.WithString("project_id",
				mcp.Description("Project UUID"),
			),
		}, paginationOptions()...)...),
		idTool(ToolGetConnection, "Get details of a connection", "connection_id", "Connection UUID"),
		connectionTool(ToolCreateConnection, "Create a connection between two access points"),
		mcp.NewTool(ToolUpdateConnection,
			mcp.WithDescription("Update the name, description, bandwidth or notifications of a connection"),
			mcp.WithString("connection_id",
				mcp.Required(),
				mcp.Description("Connection UUID"),
			),
			mcp.WithString("name",
				mcp.Description("New connection name"),
			),
			mcp.WithString("description",
				mcp.Description("New description"),
			),
			mcp.WithNumber("bandwidth",
				mcp.Description("New bandwidth in Mbps"),
				mcp.Min(1),
			),
			mcp.WithArray("notifications",
				mcp.Description("Replacement list of notification email addresses"),
				mcp.Items(map[string]any{"type": "string"}),
			),
		),
		idTool(ToolDeleteConnection, "Delete a connection", "connection_id", "Connection UUID"),
		connectionTool(ToolValidateConnection, "Validate a connection request without creating it"),
		idTool(ToolGetConnectionStats, "Get connection statistics (not available in the Fabric v4 API)", "connection_id", "Connection UUID"),

		// Cloud routers
		mcp.NewTool(ToolListRouters, append([]mcp.ToolOption{
			mcp.WithDescription("List cloud routers"),
			mcp.WithString("name",
				mcp.Description("Substring of the router name"),
			),
			mcp.WithString("state",
				mcp.Description("Router state, e.g. PROVISIONED"),
			),
			mcp.WithString("project_id",
				mcp.Description("Project UUID"),
			),
		}, paginationOptions()...)...),
		idTool(ToolGetRouter, "Get details of a cloud router", "router_id", "Cloud router UUID"),
		mcp.NewTool(ToolCreateRouter,
			mcp.WithDescription("Create a cloud router (not available in the Fabric v4 API)"),
			mcp.WithString("name",
				mcp.Description("Router name"),
			),
		),
		idTool(ToolUpdateRouter, "Update a cloud router (not available in the Fabric v4 API)", "router_id", "Cloud router UUID"),
		idTool(ToolDeleteRouter, "Delete a cloud router (not available in the Fabric v4 API)", "router_id", "Cloud router UUID"),

		// Service profiles
		mcp.NewTool(ToolListServiceProfiles, append([]mcp.ToolOption{
			mcp.WithDescription("List service profiles of cloud and network partners"),
			mcp.WithString("metro_code",
				mcp.Description("Metro code, e.g. SV"),
			),
			mcp.WithString("type",
				mcp.Description("Profile type, e.g. L2_PROFILE"),
			),
			mcp.WithString("name",
				mcp.Description("Profile name"),
			),
		}, paginationOptions()...)...),
		idTool(ToolGetServiceProfile, "Get details of a service profile", "service_profile_id", "Service profile UUID"),

		// Service tokens
		mcp.NewTool(ToolCreateServiceToken,
			mcp.WithDescription("Create a service token that lets a third party connect to one of your access points"),
			mcp.WithString("type",
				mcp.Required(),
				mcp.Description("Token type, e.g. VC_TOKEN"),
			),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Token name"),
			),
			mcp.WithString("expiration_date",
				mcp.Required(),
				mcp.Description("Expiry as an RFC 3339 timestamp"),
			),
			mcp.WithString("description",
				mcp.Description("Free-form description"),
			),
			mcp.WithArray("notifications",
				mcp.Description("Email addresses notified about token events"),
				mcp.Items(map[string]any{"type": "string"}),
			),
			mcp.WithObject("service_token_connection",
				mcp.Description("Connection template the token grants"),
				mcp.Properties(map[string]any{
					"type": map[string]any{
						"type":        "string",
						"description": "Connection type (default EVPL_VC)",
					},
					"bandwidth_limit": map[string]any{
						"type":        "integer",
						"minimum":     1,
						"description": "Maximum bandwidth in Mbps",
					},
					"a_side": map[string]any{
						"type":        "object",
						"description": "Access point the token connects to",
						"properties":  accessPointSchema,
					},
				}),
			),
		),
		mcp.NewTool(ToolListServiceTokens, append([]mcp.ToolOption{
			mcp.WithDescription("List service tokens"),
		}, paginationOptions()...)...),
		idTool(ToolGetServiceToken, "Get details of a service token", "service_token_id", "Service token UUID"),
		idTool(ToolDeleteServiceToken, "Delete a service token", "service_token_id", "Service token UUID"),
	}
}
