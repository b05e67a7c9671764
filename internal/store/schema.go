package store

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// recordSchemaJSON validates the shape of the persisted progress record. A
// document that fails it is treated as malformed and replaced with the
// default record; invariant checks beyond shape live in progress.Record.Validate.
const recordSchemaJSON = `{
	"type": "object",
	"properties": {
		"xp": {"type": "integer", "minimum": 0},
		"total_xp": {"type": "integer", "minimum": 1},
		"level": {"type": "integer", "minimum": 1},
		"streak": {"type": "integer", "minimum": 0},
		"last_active_date": {"type": "string"},
		"problems_solved": {"type": "integer", "minimum": 0},
		"total_problems": {"type": "integer", "minimum": 1},
		"quizzes_passed": {"type": "integer", "minimum": 0},
		"total_quizzes": {"type": "integer", "minimum": 1},
		"subject_progress": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"properties": {
					"completed": {"type": "integer", "minimum": 0},
					"total": {"type": "integer", "minimum": 1}
				},
				"required": ["completed", "total"]
			}
		},
		"weekly_stats": {
			"type": "object",
			"additionalProperties": {"type": "integer", "minimum": 0}
		},
		"week_start": {"type": "string"},
		"recent_activity": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"id": {"type": "string"},
					"type": {"type": "string"},
					"title": {"type": "string"},
					"subject": {"type": "string"},
					"score": {"type": "integer"},
					"at": {"type": "string"}
				},
				"required": ["id", "type", "title", "at"]
			}
		},
		"achievements": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"name": {"type": "string"},
					"earned": {"type": "boolean"}
				},
				"required": ["name", "earned"]
			}
		}
	},
	"required": [
		"xp", "total_xp", "level", "streak",
		"problems_solved", "total_problems",
		"quizzes_passed", "total_quizzes",
		"subject_progress", "weekly_stats"
	]
}`

func compileRecordSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(recordSchemaJSON))
	if err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("record.json", doc); err != nil {
		return nil, err
	}
	return c.Compile("record.json")
}
