package tools

// Input schemas, declared once as JSON. Each schema is both advertised to MCP
// clients and enforced against incoming arguments before a handler runs.
//
// status_code accepts a string or a number: numeric values are coerced to
// their literal string form, so 500 and "500" address the same response.

const schemaEmpty = `{
	"type": "object",
	"properties": {},
	"additionalProperties": false
}`

const schemaListOperations = `{
	"type": "object",
	"properties": {
		"tag": {
			"type": "string",
			"description": "Only list operations carrying this tag"
		},
		"detail_level": {
			"type": "string",
			"enum": ["minimal", "standard", "full"],
			"description": "How much to show per operation (default standard)"
		},
		"fields": {
			"type": "array",
			"items": {"type": "string"},
			"description": "Restrict output to these fields: id, method, path, summary, description, tags"
		},
		"compact": {
			"type": "boolean",
			"description": "Shorthand for detail_level minimal"
		}
	},
	"additionalProperties": false
}`

const schemaSearchOperations = `{
	"type": "object",
	"properties": {
		"query": {
			"type": "string",
			"description": "Substring matched case-insensitively against id, summary, description, and path; empty matches everything"
		}
	},
	"required": ["query"],
	"additionalProperties": false
}`

const schemaOperationRef = `{
	"type": "object",
	"properties": {
		"operation_id": {
			"type": "string",
			"description": "The operationId of the target operation"
		},
		"method": {
			"type": "string",
			"description": "HTTP method, used together with path when operation_id is absent"
		},
		"path": {
			"type": "string",
			"description": "Templated path as written in the document, e.g. /users/{userId}"
		}
	},
	"additionalProperties": false
}`

const schemaPagedOperationRef = `{
	"type": "object",
	"properties": {
		"operation_id": {
			"type": "string",
			"description": "The operationId of the target operation"
		},
		"method": {
			"type": "string",
			"description": "HTTP method, used together with path when operation_id is absent"
		},
		"path": {
			"type": "string",
			"description": "Templated path as written in the document"
		},
		"chunk_size": {
			"type": "integer",
			"minimum": 1,
			"description": "Bytes per chunk when the payload is paged"
		},
		"index": {
			"type": "integer",
			"minimum": 0,
			"description": "Zero-based chunk index to return"
		}
	},
	"additionalProperties": false
}`

const schemaResponseSchema = `{
	"type": "object",
	"properties": {
		"operation_id": {
			"type": "string",
			"description": "The operationId of the target operation"
		},
		"method": {
			"type": "string",
			"description": "HTTP method, used together with path when operation_id is absent"
		},
		"path": {
			"type": "string",
			"description": "Templated path as written in the document"
		},
		"status_code": {
			"type": ["string", "number"],
			"description": "Status code of the response to describe; defaults to the success response"
		},
		"chunk_size": {
			"type": "integer",
			"minimum": 1,
			"description": "Bytes per chunk when the payload is paged"
		},
		"index": {
			"type": "integer",
			"minimum": 0,
			"description": "Zero-based chunk index to return"
		}
	},
	"additionalProperties": false
}`

const schemaGetHeaders = `{
	"type": "object",
	"properties": {
		"operation_id": {
			"type": "string",
			"description": "The operationId of the target operation"
		},
		"method": {
			"type": "string",
			"description": "HTTP method, used together with path when operation_id is absent"
		},
		"path": {
			"type": "string",
			"description": "Templated path as written in the document"
		},
		"status_code": {
			"type": ["string", "number"],
			"description": "Only show headers of this response; matched literally against the document's status-code keys"
		}
	},
	"additionalProperties": false
}`

const schemaAuthRequirements = `{
	"type": "object",
	"properties": {
		"operation_id": {
			"type": "string",
			"description": "Show the effective security requirements of this operation instead of the whole document"
		}
	},
	"additionalProperties": false
}`
