package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"fabric-mcp/internal/fabric"
	"fabric-mcp/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
)

const subsystem = "Router"

// handlerFunc executes one tool against the Fabric service.
type handlerFunc func(ctx context.Context, svc *fabric.Service, args map[string]any) (json.RawMessage, error)

// bind decodes the arguments into T before calling fn, so no handler ever
// sees an untyped argument map.
func bind[T any](fn func(ctx context.Context, svc *fabric.Service, in T) (json.RawMessage, error)) handlerFunc {
	return func(ctx context.Context, svc *fabric.Service, args map[string]any) (json.RawMessage, error) {
		var in T
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return fn(ctx, svc, in)
	}
}

// noArgs wraps operations that ignore their arguments.
func noArgs(fn func(ctx context.Context, svc *fabric.Service) (json.RawMessage, error)) handlerFunc {
	return func(ctx context.Context, svc *fabric.Service, _ map[string]any) (json.RawMessage, error) {
		return fn(ctx, svc)
	}
}

// handlers is the closed command table. Its key set must equal the catalog.
var handlers = map[string]handlerFunc{
	ToolListPorts: bind(func(ctx context.Context, svc *fabric.Service, in pageArgs) (json.RawMessage, error) {
		return svc.ListPorts(ctx, in.page())
	}),
	ToolGetPort: bind(func(ctx context.Context, svc *fabric.Service, in portArgs) (json.RawMessage, error) {
		return svc.GetPort(ctx, in.PortID)
	}),

	ToolListConnections: bind(func(ctx context.Context, svc *fabric.Service, in pageArgs) (json.RawMessage, error) {
		return svc.SearchConnections(ctx, fabric.ConnectionFilter{}, in.page())
	}),
	ToolSearchConnections: bind(func(ctx context.Context, svc *fabric.Service, in searchConnectionsArgs) (json.RawMessage, error) {
		return svc.SearchConnections(ctx, in.filter(), in.page())
	}),
	ToolGetConnection: bind(func(ctx context.Context, svc *fabric.Service, in connectionArgs) (json.RawMessage, error) {
		return svc.GetConnection(ctx, in.ConnectionID)
	}),
	ToolCreateConnection: bind(func(ctx context.Context, svc *fabric.Service, in fabric.ConnectionRequest) (json.RawMessage, error) {
		return svc.CreateConnection(ctx, in)
	}),
	ToolUpdateConnection: bind(func(ctx context.Context, svc *fabric.Service, in updateConnectionArgs) (json.RawMessage, error) {
		return svc.UpdateConnection(ctx, in.ConnectionID, in.UpdateConnectionRequest)
	}),
	ToolDeleteConnection: bind(func(ctx context.Context, svc *fabric.Service, in connectionArgs) (json.RawMessage, error) {
		return svc.DeleteConnection(ctx, in.ConnectionID)
	}),
	ToolValidateConnection: bind(func(ctx context.Context, svc *fabric.Service, in fabric.ConnectionRequest) (json.RawMessage, error) {
		return svc.ValidateConnection(ctx, in)
	}),
	// Unsupported operations fail before their arguments are even decoded.
	ToolGetConnectionStats: noArgs(func(ctx context.Context, svc *fabric.Service) (json.RawMessage, error) {
		return svc.ConnectionStats(ctx, "")
	}),

	ToolListRouters: bind(func(ctx context.Context, svc *fabric.Service, in listRoutersArgs) (json.RawMessage, error) {
		return svc.SearchRouters(ctx, in.filter(), in.page())
	}),
	ToolGetRouter: bind(func(ctx context.Context, svc *fabric.Service, in routerArgs) (json.RawMessage, error) {
		return svc.GetRouter(ctx, in.RouterID)
	}),
	ToolCreateRouter: noArgs(func(ctx context.Context, svc *fabric.Service) (json.RawMessage, error) {
		return svc.CreateRouter(ctx)
	}),
	ToolUpdateRouter: noArgs(func(ctx context.Context, svc *fabric.Service) (json.RawMessage, error) {
		return svc.UpdateRouter(ctx, "")
	}),
	ToolDeleteRouter: noArgs(func(ctx context.Context, svc *fabric.Service) (json.RawMessage, error) {
		return svc.DeleteRouter(ctx, "")
	}),

	ToolListServiceProfiles: bind(func(ctx context.Context, svc *fabric.Service, in listServiceProfilesArgs) (json.RawMessage, error) {
		return svc.ListServiceProfiles(ctx, in.filter(), in.page())
	}),
	ToolGetServiceProfile: bind(func(ctx context.Context, svc *fabric.Service, in serviceProfileArgs) (json.RawMessage, error) {
		return svc.GetServiceProfile(ctx, in.ServiceProfileID)
	}),

	ToolCreateServiceToken: bind(func(ctx context.Context, svc *fabric.Service, in fabric.ServiceTokenRequest) (json.RawMessage, error) {
		return svc.CreateServiceToken(ctx, in)
	}),
	ToolListServiceTokens: bind(func(ctx context.Context, svc *fabric.Service, in pageArgs) (json.RawMessage, error) {
		return svc.ListServiceTokens(ctx, in.page())
	}),
	ToolGetServiceToken: bind(func(ctx context.Context, svc *fabric.Service, in serviceTokenArgs) (json.RawMessage, error) {
		return svc.GetServiceToken(ctx, in.ServiceTokenID)
	}),
	ToolDeleteServiceToken: bind(func(ctx context.Context, svc *fabric.Service, in serviceTokenArgs) (json.RawMessage, error) {
		return svc.DeleteServiceToken(ctx, in.ServiceTokenID)
	}),
}

// Router dispatches tool invocations to the Fabric service.
type Router struct {
	service  *fabric.Service
	catalog  []mcp.Tool
	handlers map[string]handlerFunc
}

// NewRouter builds a Router over svc. It fails when the catalog and the
// handler table do not name exactly the same tools.
func NewRouter(svc *fabric.Service) (*Router, error) {
	return newRouter(svc, Catalog(), handlers)
}

func newRouter(svc *fabric.Service, catalog []mcp.Tool, table map[string]handlerFunc) (*Router, error) {
	if svc == nil {
		return nil, fmt.Errorf("fabric service is required")
	}
	if err := checkDrift(catalog, table); err != nil {
		return nil, err
	}
	return &Router{service: svc, catalog: catalog, handlers: table}, nil
}

func checkDrift(catalog []mcp.Tool, table map[string]handlerFunc) error {
	declared := make(map[string]bool, len(catalog))
	var problems []string

	for _, tool := range catalog {
		if declared[tool.Name] {
			problems = append(problems, fmt.Sprintf("tool %q is declared twice", tool.Name))
			continue
		}
		declared[tool.Name] = true
		if _, ok := table[tool.Name]; !ok {
			problems = append(problems, fmt.Sprintf("tool %q has no handler", tool.Name))
		}
	}
	for name := range table {
		if !declared[name] {
			problems = append(problems, fmt.Sprintf("handler %q is not in the catalog", name))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return fmt.Errorf("tool catalog and handler table disagree: %s", strings.Join(problems, "; "))
}

// Tools returns the catalog served by this router.
func (r *Router) Tools() []mcp.Tool {
	out := make([]mcp.Tool, len(r.catalog))
	copy(out, r.catalog)
	return out
}

// Call runs the named tool and renders its outcome. It never returns nil
// and never panics: failures become error results whose text starts with
// "Error calling <name>:".
func (r *Router) Call(ctx context.Context, name string, args map[string]any) (result *mcp.CallToolResult) {
	handler, ok := r.handlers[name]
	if !ok {
		logging.Warn(subsystem, "Unknown tool requested: %s", name)
		return mcp.NewToolResultError("Unknown tool: " + name)
	}

	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("internal error: %v", rec)
			logging.Error(subsystem, err, "Tool %s panicked\n%s", name, debug.Stack())
			result = errorResult(name, err)
		}
	}()

	raw, err := handler(ctx, r.service, args)
	if err != nil {
		logging.Debug(subsystem, "Tool %s failed after %s: %v", name, time.Since(start), err)
		return errorResult(name, err)
	}

	text, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		logging.Error(subsystem, err, "Tool %s returned a response that could not be rendered", name)
		return errorResult(name, fmt.Errorf("failed to render response: %w", err))
	}

	logging.Debug(subsystem, "Tool %s succeeded after %s", name, time.Since(start))
	return mcp.NewToolResultText(string(text))
}

func errorResult(name string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Error calling %s: %v", name, err))
}
