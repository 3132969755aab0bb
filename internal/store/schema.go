package store

// jsonSchema describes the combined events and reminders payload. Kept as a
// pre-rendered literal so the published schema stays byte-stable across
// releases.
const jsonSchema = `{
  "type": "object",
  "properties": {
    "events": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "title": {
            "type": "string"
          },
          "location": {
            "type": [
              "string",
              "null"
            ]
          },
          "notes": {
            "type": [
              "string",
              "null"
            ]
          },
          "start_time": {
            "type": [
              "string",
              "null"
            ]
          },
          "end_time": {
            "type": [
              "string",
              "null"
            ]
          },
          "all_day": {
            "type": "boolean"
          },
          "calendar": {
            "type": "string"
          },
          "url": {
            "type": [
              "string",
              "null"
            ]
          },
          "availability": {
            "type": "string",
            "enum": [
              "busy",
              "free"
            ]
          },
          "conference_url": {
            "type": [
              "string",
              "null"
            ]
          },
          "participants": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": {
                "name": {
                  "type": "string"
                },
                "email": {
                  "type": [
                    "string",
                    "null"
                  ]
                },
                "status": {
                  "type": "string"
                },
                "type": {
                  "type": "string"
                },
                "role": {
                  "type": "string"
                },
                "is_organizer": {
                  "type": "boolean"
                }
              },
              "required": [
                "name",
                "status",
                "type",
                "role",
                "is_organizer"
              ]
            }
          },
          "has_organizer": {
            "type": "boolean"
          },
          "organizer": {
            "type": "object",
            "properties": {
              "name": {
                "type": [
                  "string",
                  "null"
                ]
              },
              "email": {
                "type": [
                  "string",
                  "null"
                ]
              }
            }
          }
        },
        "required": [
          "title",
          "all_day",
          "calendar"
        ]
      }
    },
    "reminders": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "title": {
            "type": "string"
          },
          "notes": {
            "type": [
              "string",
              "null"
            ]
          },
          "due_date": {
            "type": [
              "string",
              "null"
            ]
          },
          "priority": {
            "type": "integer"
          },
          "completed": {
            "type": "boolean"
          },
          "calendar": {
            "type": "string"
          }
        },
        "required": [
          "title",
          "completed",
          "calendar"
        ]
      }
    },
    "events_error": {
      "type": "string"
    },
    "reminders_error": {
      "type": "string"
    }
  }
}`

// JSONSchema returns the JSON schema for the combined output payload.
func JSONSchema() string {
	return jsonSchema
}
