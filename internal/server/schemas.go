package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ca-facilities/custodial-command/constants"
)

// ratingKeys are the JSON names of the eleven rating fields shared by
// inspections and room inspections.
var ratingKeys = []string{
	"floors",
	"verticalHorizontalSurfaces",
	"ceiling",
	"restrooms",
	"customerSatisfaction",
	"trash",
	"projectCleaning",
	"activitySupport",
	"safetyCompliance",
	"equipment",
	"monitoring",
}

func nullableString() map[string]any {
	return map[string]any{"type": []string{"string", "null"}}
}

// ratingProperties returns the eleven rating fields. Values are accepted as
// any integer or null; there is no range restriction.
func ratingProperties() map[string]any {
	props := map[string]any{}
	for _, k := range ratingKeys {
		props[k] = map[string]any{"type": []string{"integer", "null"}}
	}
	return props
}

// BuildInspectionJSONSchema describes the create-inspection payload.
// inspectionType is optional here; the handler defaults it to
// whole_building before persistence.
func BuildInspectionJSONSchema() map[string]any {
	props := map[string]any{
		"inspectorName": nullableString(),
		"school":        map[string]any{"type": "string"},
		"date":          map[string]any{"type": "string"},
		"inspectionType": map[string]any{
			"type": "string",
			"enum": constants.InspectionTypes,
		},
		"locationDescription":  map[string]any{"type": "string"},
		"roomNumber":           nullableString(),
		"locationCategory":     nullableString(),
		"buildingName":         nullableString(),
		"buildingInspectionId": map[string]any{"type": []string{"integer", "null"}},
		"notes":                nullableString(),
		"images":               map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"verifiedRooms":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"isCompleted":          map[string]any{"type": "boolean"},
	}
	for k, v := range ratingProperties() {
		props[k] = v
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   []string{"school", "date"},
		"if": map[string]any{
			"properties": map[string]any{
				"inspectionType": map[string]any{"const": string(constants.SingleRoom)},
			},
			"required": []string{"inspectionType"},
		},
		"then": map[string]any{
			"required": []string{"locationDescription"},
		},
	}
}

// BuildInspectionPatchJSONSchema is the create schema minus the required
// fields; any subset of properties may be supplied.
func BuildInspectionPatchJSONSchema() map[string]any {
	schema := BuildInspectionJSONSchema()
	delete(schema, "required")
	delete(schema, "if")
	delete(schema, "then")
	return schema
}

// BuildRoomInspectionJSONSchema describes the create-room-inspection payload.
func BuildRoomInspectionJSONSchema() map[string]any {
	props := map[string]any{
		"buildingInspectionId": map[string]any{"type": "integer"},
		"roomType":             map[string]any{"type": "string"},
		"roomIdentifier":       nullableString(),
		"notes":                nullableString(),
		"images":               map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	}
	for k, v := range ratingProperties() {
		props[k] = v
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   []string{"buildingInspectionId", "roomType"},
	}
}

// BuildCustodialNoteJSONSchema describes the create-custodial-note payload.
func BuildCustodialNoteJSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"inspectorName":       nullableString(),
			"school":              map[string]any{"type": "string"},
			"date":                map[string]any{"type": "string"},
			"location":            map[string]any{"type": "string"},
			"locationDescription": nullableString(),
			"notes":               map[string]any{"type": "string"},
			"images":              map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []string{"school", "date", "location", "notes"},
	}
}

// ValidatePayload validates "data" against "schemaMap" and returns one
// message per violation, or nil when the payload conforms.
func ValidatePayload(schemaMap map[string]any, data []byte) []string {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return []string{fmt.Sprintf("marshal schema: %v", err)}
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return []string{fmt.Sprintf("add schema: %v", err)}
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return []string{fmt.Sprintf("compile schema: %v", err)}
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return []string{"request body is not valid JSON"}
	}
	if err := schema.Validate(v); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return flattenSchemaErrors(ve, nil)
		}
		return []string{err.Error()}
	}
	return nil
}

// flattenSchemaErrors collects the leaf causes of a validation error, one
// message per violated constraint.
func flattenSchemaErrors(ve *jsonschema.ValidationError, out []string) []string {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return append(out, fmt.Sprintf("%s: %s", loc, ve.Message))
	}
	for _, cause := range ve.Causes {
		out = flattenSchemaErrors(cause, out)
	}
	return out
}
