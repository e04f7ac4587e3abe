package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"fieldpro.app/relay/internal/apikey"
)

// Gateway actions accepted on the automation endpoint.
const (
	ActionContactCreate     = "contact.create"
	ActionContactUpdate     = "contact.update"
	ActionContactDelete     = "contact.delete"
	ActionEventCreate       = "event.create"
	ActionEventUpdate       = "event.update"
	ActionEventDelete       = "event.delete"
	ActionAvailabilityCheck = "availability.check"
)

const schemaBaseURL = "https://fieldpro.app/schemas/gateway/"

type ContactCreateData struct {
	FirstName string  `json:"first_name,omitempty" jsonschema:"maxLength=200"`
	LastName  string  `json:"last_name,omitempty" jsonschema:"maxLength=200"`
	Email     *string `json:"email,omitempty" jsonschema:"format=email"`
	Phone     *string `json:"phone,omitempty" jsonschema:"maxLength=50"`
	Company   *string `json:"company,omitempty" jsonschema:"maxLength=200"`
	Address   *string `json:"address,omitempty" jsonschema:"maxLength=500"`
	Notes     *string `json:"notes,omitempty"`
}

type ContactUpdateData struct {
	ID        string  `json:"id" jsonschema:"required,pattern=^[0-9]+$,description=Contact id"`
	FirstName *string `json:"first_name,omitempty" jsonschema:"maxLength=200"`
	LastName  *string `json:"last_name,omitempty" jsonschema:"maxLength=200"`
	Email     *string `json:"email,omitempty" jsonschema:"format=email"`
	Phone     *string `json:"phone,omitempty" jsonschema:"maxLength=50"`
	Company   *string `json:"company,omitempty" jsonschema:"maxLength=200"`
	Address   *string `json:"address,omitempty" jsonschema:"maxLength=500"`
	Notes     *string `json:"notes,omitempty"`
}

type DeleteData struct {
	ID string `json:"id" jsonschema:"required,pattern=^[0-9]+$"`
}

type EventCreateData struct {
	Title        string    `json:"title" jsonschema:"required,minLength=1,maxLength=200"`
	Description  *string   `json:"description,omitempty"`
	Location     *string   `json:"location,omitempty" jsonschema:"maxLength=500"`
	StartsAt     time.Time `json:"starts_at" jsonschema:"required"`
	EndsAt       time.Time `json:"ends_at" jsonschema:"required"`
	ContactID    *string   `json:"contact_id,omitempty" jsonschema:"pattern=^[0-9]+$"`
	JobID        *string   `json:"job_id,omitempty" jsonschema:"pattern=^[0-9]+$"`
	AllowOverlap bool      `json:"allow_overlap,omitempty" jsonschema:"description=Create even when the slot is already booked"`
}

type EventUpdateData struct {
	ID            string     `json:"id" jsonschema:"required,pattern=^[0-9]+$,description=Event id"`
	Title         *string    `json:"title,omitempty" jsonschema:"minLength=1,maxLength=200"`
	Description   *string    `json:"description,omitempty"`
	Location      *string    `json:"location,omitempty" jsonschema:"maxLength=500"`
	StartsAt      *time.Time `json:"starts_at,omitempty"`
	EndsAt        *time.Time `json:"ends_at,omitempty"`
	ContactID     *string    `json:"contact_id,omitempty" jsonschema:"pattern=^[0-9]+$"`
	JobID         *string    `json:"job_id,omitempty" jsonschema:"pattern=^[0-9]+$"`
	UnlinkContact bool       `json:"unlink_contact,omitempty" jsonschema:"description=Remove the linked contact"`
	UnlinkJob     bool       `json:"unlink_job,omitempty" jsonschema:"description=Remove the linked job"`
	AllowOverlap  bool       `json:"allow_overlap,omitempty"`
}

type AvailabilityData struct {
	Start       time.Time `json:"start" jsonschema:"required"`
	End         time.Time `json:"end" jsonschema:"required"`
	SlotMinutes int       `json:"slot_minutes,omitempty" jsonschema:"minimum=5,maximum=1440,description=Minimum free slot length (default 30)"`
}

// ActionSchema describes one gateway action for callers building requests.
type ActionSchema struct {
	Action string             `json:"action"`
	Scope  string             `json:"scope"`
	Schema *jsonschema.Schema `json:"schema"`
}

type actionDef struct {
	scope   string
	payload func() any
}

var actionDefs = map[string]actionDef{
	ActionContactCreate:     {scope: "contacts:create", payload: func() any { return &ContactCreateData{} }},
	ActionContactUpdate:     {scope: "contacts:update", payload: func() any { return &ContactUpdateData{} }},
	ActionContactDelete:     {scope: "contacts:delete", payload: func() any { return &DeleteData{} }},
	ActionEventCreate:       {scope: "events:create", payload: func() any { return &EventCreateData{} }},
	ActionEventUpdate:       {scope: "events:update", payload: func() any { return &EventUpdateData{} }},
	ActionEventDelete:       {scope: "events:delete", payload: func() any { return &DeleteData{} }},
	ActionAvailabilityCheck: {scope: "events:read", payload: func() any { return &AvailabilityData{} }},
}

type compiledAction struct {
	schema    *jsonschema.Schema
	validator *sjsonschema.Schema
}

var actionSchemas = mustCompileActionSchemas()

// ActionScope returns the scope an action requires.
func ActionScope(action string) (string, bool) {
	def, ok := actionDefs[action]
	return def.scope, ok
}

// ActionSchemas lists every action with its required scope and payload schema,
// sorted by action name.
func ActionSchemas() []ActionSchema {
	names := make([]string, 0, len(actionDefs))
	for name := range actionDefs {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]ActionSchema, 0, len(names))
	for _, name := range names {
		out = append(out, ActionSchema{
			Action: name,
			Scope:  actionDefs[name].scope,
			Schema: actionSchemas[name].schema,
		})
	}
	return out
}

func reflectActionSchema(action string, payload any) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(payload)
	schema.ID = jsonschema.ID(schemaBaseURL + action + ".json")
	schema.Title = action
	return schema
}

func mustCompileActionSchemas() map[string]compiledAction {
	compiler := sjsonschema.NewCompiler()
	compiler.AssertFormat()

	reflected := make(map[string]*jsonschema.Schema, len(actionDefs))
	for action, def := range actionDefs {
		schema := reflectActionSchema(action, def.payload())
		raw, err := json.Marshal(schema)
		if err != nil {
			panic(fmt.Sprintf("encoding %s schema: %v", action, err))
		}
		doc, err := sjsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			panic(fmt.Sprintf("decoding %s schema: %v", action, err))
		}
		if err := compiler.AddResource(string(schema.ID), doc); err != nil {
			panic(fmt.Sprintf("adding %s schema: %v", action, err))
		}
		reflected[action] = schema
	}

	compiled := make(map[string]compiledAction, len(reflected))
	for action, schema := range reflected {
		validator, err := compiler.Compile(string(schema.ID))
		if err != nil {
			panic(fmt.Sprintf("compiling %s schema: %v", action, err))
		}
		compiled[action] = compiledAction{schema: schema, validator: validator}
	}
	return compiled
}

// decodeActionData validates raw against the action's schema and decodes it
// into the action's payload type.
func decodeActionData(action string, raw json.RawMessage) (any, error) {
	def, ok := actionDefs[action]
	if !ok {
		return nil, invalid(fmt.Sprintf("unknown action %q", action))
	}
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		raw = json.RawMessage("{}")
	}

	inst, err := sjsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, invalid("data must be a JSON object")
	}
	if err := actionSchemas[action].validator.Validate(inst); err != nil {
		return nil, invalid("invalid data: " + schemaViolation(err))
	}

	payload := def.payload()
	if err := json.Unmarshal(raw, payload); err != nil {
		return nil, invalid("invalid data: " + err.Error())
	}
	return payload, nil
}

// schemaViolation flattens a validation error tree into one line.
func schemaViolation(err error) string {
	var ve *sjsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	lines := strings.Split(ve.Error(), "\n")
	details := make([]string, 0, len(lines))
	for _, line := range lines[1:] {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
		if line != "" {
			details = append(details, line)
		}
	}
	if len(details) == 0 {
		return lines[0]
	}
	return strings.Join(details, "; ")
}

func parseID(field, raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, invalid(field + " must be a numeric id")
	}
	return v, nil
}

func parseOptionalID(field string, raw *string) (*int64, error) {
	if raw == nil {
		return nil, nil
	}
	v, err := parseID(field, *raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Every action scope must be grantable.
func init() {
	for action, def := range actionDefs {
		if !slices.Contains(apikey.Scopes, def.scope) {
			panic(fmt.Sprintf("action %s requires unknown scope %s", action, def.scope))
		}
	}
}
