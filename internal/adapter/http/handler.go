package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/dspatoulas/urid"

	"github.com/dspatoulas/urid/internal/app"
	"github.com/dspatoulas/urid/internal/domain"
)

const timeFormat = "2006-01-02T15:04:05Z"

// ResourceResponse is the API representation of a registered resource.
// The identifier serializes as its bare 30-character string.
type ResourceResponse struct {
	ID        urid.ResourceID `json:"id" doc:"Typed resource identifier"`
	Kind      string          `json:"kind" doc:"4-character resource type tag"`
	Name      string          `json:"name" doc:"Unique display name"`
	Status    string          `json:"status" doc:"Lifecycle state"`
	CreatedAt string          `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt string          `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toResourceResponse(r domain.Resource) ResourceResponse {
	return ResourceResponse{
		ID:        r.ID,
		Kind:      r.Kind(),
		Name:      r.Name,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt.Format(timeFormat),
		UpdatedAt: r.UpdatedAt.Format(timeFormat),
	}
}

// --- Register Resource ---

type RegisterResourceInput struct {
	Body struct {
		// Kind length is validated structurally by the identifier layer;
		// any 4-character tag is acceptable, there is no closed registry.
		Kind string `json:"kind" minLength:"1" doc:"Resource type tag (exactly 4 characters, any case)"`
		Name string `json:"name" minLength:"1" maxLength:"255" doc:"Unique display name"`
	}
}

type RegisterResourceOutput struct {
	Body ResourceResponse
}

// --- Get Resource ---

type GetResourceInput struct {
	ID string `path:"id" doc:"Resource identifier (30 characters)"`
}

type GetResourceOutput struct {
	Body ResourceResponse
}

// --- List Resources ---

type ListResourcesInput struct {
	Kind   string `query:"kind" required:"false" doc:"Filter by resource type tag"`
	Status string `query:"status" required:"false" doc:"Filter by status"`
	Limit  int    `query:"limit" required:"false" default:"50" doc:"Max results"`
	Offset int    `query:"offset" required:"false" default:"0" doc:"Pagination offset"`
}

type ListResourcesOutput struct {
	Body []ResourceResponse
}

// --- Transition ---

type TransitionInput struct {
	ID   string `path:"id" doc:"Resource identifier (30 characters)"`
	Body struct {
		Event string `json:"event" doc:"Lifecycle event to trigger" enum:"activate,archive,restore,purge"`
	}
}

type TransitionOutput struct {
	Body ResourceResponse
}

// Register adds all resource API routes to the Huma API.
func Register(api huma.API, svc *app.RegistryService) {
	huma.Register(api, huma.Operation{
		OperationID: "register-resource",
		Method:      http.MethodPost,
		Path:        "/api/v1/resources",
		Summary:     "Register a new resource and mint its identifier",
		Tags:        []string{"Resources"},
	}, func(ctx context.Context, input *RegisterResourceInput) (*RegisterResourceOutput, error) {
		resource, err := svc.Register(ctx, input.Body.Kind, input.Body.Name)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &RegisterResourceOutput{Body: toResourceResponse(resource)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-resource",
		Method:      http.MethodGet,
		Path:        "/api/v1/resources/{id}",
		Summary:     "Get a resource by its identifier",
		Tags:        []string{"Resources"},
	}, func(ctx context.Context, input *GetResourceInput) (*GetResourceOutput, error) {
		id, err := urid.Parse(input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}

		resource, err := svc.GetByID(ctx, id)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetResourceOutput{Body: toResourceResponse(resource)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-resources",
		Method:      http.MethodGet,
		Path:        "/api/v1/resources",
		Summary:     "List resources",
		Tags:        []string{"Resources"},
	}, func(ctx context.Context, input *ListResourcesInput) (*ListResourcesOutput, error) {
		filter := domain.ListFilter{
			Limit:  input.Limit,
			Offset: input.Offset,
		}
		if input.Kind != "" {
			k := input.Kind
			filter.Kind = &k
		}
		if input.Status != "" {
			s := domain.Status(input.Status)
			filter.Status = &s
		}

		resources, err := svc.List(ctx, filter)
		if err != nil {
			return nil, toHumaError(err)
		}

		resp := make([]ResourceResponse, len(resources))
		for i, r := range resources {
			resp[i] = toResourceResponse(r)
		}
		return &ListResourcesOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "transition-resource",
		Method:      http.MethodPost,
		Path:        "/api/v1/resources/{id}/events",
		Summary:     "Trigger a lifecycle event",
		Tags:        []string{"Resources"},
	}, func(ctx context.Context, input *TransitionInput) (*TransitionOutput, error) {
		id, err := urid.Parse(input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}

		resource, err := svc.Transition(ctx, id, domain.Event(input.Body.Event))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &TransitionOutput{Body: toResourceResponse(resource)}, nil
	})
}

// toHumaError translates domain and identifier errors to Huma HTTP errors.
func toHumaError(err error) error {
	if errors.Is(err, domain.ErrResourceNotFound) {
		return huma.Error404NotFound("resource not found")
	}

	var nameErr *domain.NameConflictError
	if errors.As(err, &nameErr) {
		return huma.Error409Conflict(nameErr.Error())
	}

	var trErr *domain.TransitionError
	if errors.As(err, &trErr) {
		return huma.Error422UnprocessableEntity(trErr.Error())
	}

	// Identifier format failures are deterministic validation errors.
	var typeErr *urid.InvalidResourceTypeError
	var lenErr *urid.InvalidLengthError
	var decodeErr *urid.ULIDDecodeError
	if errors.As(err, &typeErr) || errors.As(err, &lenErr) || errors.As(err, &decodeErr) {
		return huma.Error422UnprocessableEntity(err.Error())
	}

	return huma.Error500InternalServerError("internal server error")
}
