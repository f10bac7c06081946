package http

import (
	"encoding/json"
	"fmt"

	"mes/internal/core/application/usecases/commands"
	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/workorder"
	"mes/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// scheduledAlias is accepted as a status value for older clients and means scheduled=true.
const scheduledAlias = "scheduled"

// parseWorkOrderPatch decodes a PATCH body into a patch whose non-nil fields
// are exactly the keys present in the JSON object.
func parseWorkOrderPatch(body []byte, validate *validator.Validate) (commands.WorkOrderPatch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return commands.WorkOrderPatch{}, errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	var patch commands.WorkOrderPatch
	alias := false
	for key, value := range raw {
		var err error
		switch key {
		case "name":
			patch.Name, err = decode[string](value)
		case "status":
			var s *string
			if s, err = decode[string](value); err != nil {
				break
			}
			if *s == scheduledAlias {
				alias = true
				break
			}
			var st workorder.Status
			if st, err = workorder.ParseStatus(*s); err == nil {
				patch.Status = &st
			}
		case "scheduled":
			patch.Scheduled, err = decode[bool](value)
		case "route_id":
			var id *openapi_types.UUID
			if id, err = decode[openapi_types.UUID](value); err != nil {
				break
			}
			var routeID kernel.UUID
			if routeID, err = kernel.UUIDFromBytes(id[:]); err == nil {
				patch.RouteID = &routeID
			}
		case "steps":
			var steps *[]stepRequest
			if steps, err = decode[[]stepRequest](value); err != nil {
				break
			}
			for _, step := range *steps {
				if err = validate.Struct(step); err != nil {
					break
				}
			}
			if err != nil {
				break
			}
			defs, convErr := toStepDefinitions(*steps)
			if err = convErr; err == nil {
				patch.Steps = &defs
			}
		default:
			err = fmt.Errorf("unknown field %q", key)
		}

		if err != nil {
			return commands.WorkOrderPatch{}, errs.NewValueIsInvalidErrorWithCause(key, err)
		}
	}

	if alias {
		if patch.Scheduled != nil && !*patch.Scheduled {
			return commands.WorkOrderPatch{}, errs.NewValueIsInvalidErrorWithCause(
				"scheduled",
				fmt.Errorf("status %q contradicts scheduled=false", scheduledAlias),
			)
		}
		scheduled := true
		patch.Scheduled = &scheduled
	}

	return patch, nil
}

func decode[T any](raw json.RawMessage) (*T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
