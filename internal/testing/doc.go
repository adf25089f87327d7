// Package testing runs YAML-defined tool scenarios against a fake Fabric API.
//
// A scenario lists canned provider responses and a sequence of tool calls.
// Each scenario gets its own mock.FabricServer and tools.Router, so scenarios
// never share tokens or recorded requests.
//
// # Scenario Format
//
//	name: connection-lifecycle
//	description: create, inspect and delete a connection
//	tags: [connections]
//	fabric:
//	  routes:
//	    - method: POST
//	      path: /connections
//	      status: 201
//	      body: {uuid: conn-1}
//	steps:
//	  - id: create
//	    tool: create_connection
//	    args: {...}
//	    expected:
//	      success: true
//	      json_path:
//	        uuid: conn-1
//	      request:
//	        method: POST
//	        path: /connections
//
// Route paths are relative to the /fabric/v4 API root. Every step is checked
// against its expectation; the first failing step ends the scenario.
//
// The built-in scenarios are embedded in the binary and run by
// `fabric-mcp test`. Pass --path to run scenarios from disk instead.
package testing
