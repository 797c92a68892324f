// Package fixtures provides shared test data for agenteval: a retail
// customer-service tool catalog and sample agent traces that exercise
// function calls, built-in tool calls, and plain text turns.
package fixtures

import "github.com/BaSui01/agenteval/types"

// RetailToolDefinitions returns the retail customer-service tool
// catalog. All definitions are strict, so every declared parameter is
// required.
func RetailToolDefinitions() []types.ToolDefinition {
	return []types.ToolDefinition{
		{
			Name:        "check_order_status",
			Description: "Check the status of a customer order by order number",
			Parameters: []types.Parameter{
				{Name: "order_number", Type: "string", Description: "The order number (e.g., ORD-2024-5678)"},
			},
			Required: []string{"order_number"},
			Strict:   true,
		},
		{
			Name:        "process_refund",
			Description: "Process a refund for an order",
			Parameters: []types.Parameter{
				{Name: "order_number", Type: "string", Description: "The order number to refund"},
				{Name: "reason", Type: "string", Description: "Reason for the refund"},
			},
			Required: []string{"order_number", "reason"},
			Strict:   true,
		},
		{
			Name:        "cancel_order",
			Description: "Cancel an order if it hasn't shipped yet",
			Parameters: []types.Parameter{
				{Name: "order_number", Type: "string", Description: "The order number to cancel"},
			},
			Required: []string{"order_number"},
			Strict:   true,
		},
		{
			Name:        "send_email",
			Description: "Send an email to a recipient",
			Parameters: []types.Parameter{
				{Name: "to", Type: "string", Description: "Email recipient address"},
				{Name: "subject", Type: "string", Description: "Email subject"},
				{Name: "body", Type: "string", Description: "Email body content"},
				{Name: "cc", Type: "string", Description: "CC email address (optional)"},
			},
			Required: []string{"to", "subject", "body", "cc"},
			Strict:   true,
		},
		{
			Name:        "update_customer_profile_salesforce",
			Description: "Update customer profile in Salesforce CRM",
			Parameters: []types.Parameter{
				{Name: "customer_id", Type: "string", Description: "Customer ID (optional)"},
				{Name: "phone", Type: "string", Description: "Phone number to update"},
				{Name: "email", Type: "string", Description: "Email address to update"},
				{Name: "address", Type: "string", Description: "Address to update"},
			},
			Required: []string{"customer_id", "phone", "email", "address"},
			Strict:   true,
		},
		{
			Name:        "get_customer_profile_crm",
			Description: "Retrieve customer profile from CRM system",
			Parameters: []types.Parameter{
				{Name: "customer_id", Type: "string", Description: "Customer ID"},
				{Name: "email", Type: "string", Description: "Customer email"},
			},
			Required: []string{"customer_id", "email"},
			Strict:   true,
		},
		{
			Name:        "create_support_ticket_erp",
			Description: "Create a support ticket in ERP system",
			Parameters: []types.Parameter{
				{Name: "issue_type", Type: "string", Description: "Type of issue (e.g., technical, billing, shipping)"},
				{Name: "description", Type: "string", Description: "Detailed description of the issue"},
				{Name: "priority", Type: "string", Description: "Priority level: low, medium, or high"},
			},
			Required: []string{"issue_type", "description", "priority"},
			Strict:   true,
		},
		{
			Name:        "check_product_availability",
			Description: "Check if a product is in stock",
			Parameters: []types.Parameter{
				{Name: "product_name", Type: "string", Description: "Name of the product"},
				{Name: "store_location", Type: "string", Description: "Store location (Online, Seattle, New York)"},
			},
			Required: []string{"product_name", "store_location"},
			Strict:   true,
		},
		{
			Name:        "schedule_installation",
			Description: "Schedule product installation service",
			Parameters: []types.Parameter{
				{Name: "order_number", Type: "string", Description: "Order number for installation"},
				{Name: "preferred_date", Type: "string", Description: "Preferred installation date (YYYY-MM-DD format)"},
				{Name: "time_slot", Type: "string", Description: "Preferred time slot: morning or afternoon"},
			},
			Required: []string{"order_number", "preferred_date", "time_slot"},
			Strict:   true,
		},
		{
			Name:        "process_warranty_claim",
			Description: "Process a warranty claim for a product",
			Parameters: []types.Parameter{
				{Name: "product_id", Type: "string", Description: "Product ID or serial number"},
				{Name: "issue_description", Type: "string", Description: "Description of the issue with the product"},
			},
			Required: []string{"product_id", "issue_description"},
			Strict:   true,
		},
	}
}

// ToolDefinition returns the named definition from the retail catalog.
// It panics on an unknown name so fixture typos fail loudly.
func ToolDefinition(name string) types.ToolDefinition {
	for _, def := range RetailToolDefinitions() {
		if def.Name == name {
			return def
		}
	}
	panic("fixtures: unknown tool " + name)
}
