// Package mcpserver serves the Karma configuration builder to MCP clients.
//
// Two tools are registered: karma_config builds a configuration from an
// environment described entirely by the tool arguments, and karma_launchers
// lists the remote launcher table. The server speaks MCP over stdio.
package mcpserver
