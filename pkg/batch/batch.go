// Package batch executes bounded lists of create/update/delete operations
// against one entity collection. Structural validation of the whole request
// happens before any mutation; execution is sequential and a failed
// operation never aborts the rest of the batch.
package batch

import (
	"fmt"

	"github.com/ft-manu/forethought-test-api/internal/service"
	"github.com/ft-manu/forethought-test-api/pkg/entity"
	"github.com/ft-manu/forethought-test-api/pkg/validation"
)

// MaxOperations bounds a single batch request.
const MaxOperations = 50

// Actions accepted in a batch operation.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Operation is one entry of a batch request.
type Operation struct {
	Action string         `json:"action"`
	Data   map[string]any `json:"data"`
}

// Result is the outcome of one operation. Status is "success" or "error".
type Result struct {
	Status string         `json:"status"`
	Data   map[string]any `json:"data,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// Response is the batch endpoint's response body.
type Response struct {
	Results []Result `json:"results"`
}

// Validate structurally checks the raw operations value before execution:
// it must be a non-empty array of at most MaxOperations objects, each with
// a known action and an object-valued data field. Indices in messages are
// 1-based.
func Validate(operations any) validation.Result {
	ops, ok := operations.([]any)
	if !ok {
		return validation.Result{Message: "Field 'operations' must be an array"}
	}
	if len(ops) == 0 {
		return validation.Result{Message: "Field 'operations' cannot be empty"}
	}
	if len(ops) > MaxOperations {
		return validation.Result{Message: fmt.Sprintf("Batch operations limited to %d items per request", MaxOperations)}
	}

	for i, raw := range ops {
		op, ok := raw.(map[string]any)
		if !ok {
			return validation.Result{Message: fmt.Sprintf("Operation %d: must be a valid object", i+1)}
		}
		action, present := op["action"]
		if !present {
			return validation.Result{Message: fmt.Sprintf("Operation %d: field 'action' is required", i+1)}
		}
		if s, ok := action.(string); !ok || (s != ActionCreate && s != ActionUpdate && s != ActionDelete) {
			return validation.Result{Message: fmt.Sprintf("Operation %d: field 'action' must be one of: create, update, delete", i+1)}
		}
		data, present := op["data"]
		if !present {
			return validation.Result{Message: fmt.Sprintf("Operation %d: field 'data' is required", i+1)}
		}
		if _, ok := data.(map[string]any); !ok {
			return validation.Result{Message: fmt.Sprintf("Operation %d: field 'data' must be a valid object", i+1)}
		}
	}

	return validation.Result{Valid: true}
}

// Decode converts a structurally valid operations value into Operations.
func Decode(operations any) []Operation {
	raw := operations.([]any)
	ops := make([]Operation, len(raw))
	for i, r := range raw {
		m := r.(map[string]any)
		ops[i] = Operation{
			Action: m["action"].(string),
			Data:   m["data"].(map[string]any),
		}
	}
	return ops
}

// Executor runs batch operations through the shared mutation service.
type Executor struct {
	svc *service.Service
}

// NewExecutor creates an executor over the service.
func NewExecutor(svc *service.Service) *Executor {
	return &Executor{svc: svc}
}

// Execute applies the operations in order against the kind's collection.
// Every operation is attempted; each gets exactly one result entry, with
// the 1-based operation index carried in error messages.
func (e *Executor) Execute(kind entity.Kind, ops []Operation) []Result {
	results := make([]Result, 0, len(ops))
	for i, op := range ops {
		rec, serr := e.apply(kind, op)
		if serr != nil {
			results = append(results, Result{
				Status: "error",
				Error:  fmt.Sprintf("Operation %d: %s", i+1, serr.Message),
			})
			continue
		}
		results = append(results, Result{Status: "success", Data: rec})
	}
	return results
}

func (e *Executor) apply(kind entity.Kind, op Operation) (map[string]any, *service.Error) {
	switch op.Action {
	case ActionCreate:
		return e.create(kind, op.Data)
	case ActionUpdate:
		id, serr := operationID(op.Data, ActionUpdate)
		if serr != nil {
			return nil, serr
		}
		return e.update(kind, id, op.Data)
	case ActionDelete:
		id, serr := operationID(op.Data, ActionDelete)
		if serr != nil {
			return nil, serr
		}
		return nil, e.delete(kind, id)
	}
	// Unreachable after Validate, kept for direct callers.
	return nil, &service.Error{Message: fmt.Sprintf("unknown action '%s'", op.Action)}
}

func operationID(data map[string]any, action string) (string, *service.Error) {
	id, ok := data["id"].(string)
	if !ok || id == "" {
		return "", &service.Error{Message: fmt.Sprintf("field 'id' is required for %s", action)}
	}
	return id, nil
}

func (e *Executor) create(kind entity.Kind, data map[string]any) (map[string]any, *service.Error) {
	switch kind {
	case entity.KindOrganization:
		org, serr := e.svc.CreateOrganization(data)
		if serr != nil {
			return nil, serr
		}
		return org.Map(), nil
	case entity.KindUser:
		user, serr := e.svc.CreateUser(data)
		if serr != nil {
			return nil, serr
		}
		return user.Map(), nil
	default:
		profile, serr := e.svc.CreateProfile(data)
		if serr != nil {
			return nil, serr
		}
		return profile.Map(), nil
	}
}

func (e *Executor) update(kind entity.Kind, id string, data map[string]any) (map[string]any, *service.Error) {
	switch kind {
	case entity.KindOrganization:
		org, serr := e.svc.UpdateOrganization(id, data)
		if serr != nil {
			return nil, serr
		}
		return org.Map(), nil
	case entity.KindUser:
		user, serr := e.svc.UpdateUser(id, data)
		if serr != nil {
			return nil, serr
		}
		return user.Map(), nil
	default:
		profile, serr := e.svc.UpdateProfile(id, data)
		if serr != nil {
			return nil, serr
		}
		return profile.Map(), nil
	}
}

func (e *Executor) delete(kind entity.Kind, id string) *service.Error {
	switch kind {
	case entity.KindOrganization:
		return e.svc.DeleteOrganization(id)
	case entity.KindUser:
		return e.svc.DeleteUser(id)
	default:
		return e.svc.DeleteProfile(id)
	}
}
