package book

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/graphql-go/graphql"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/platform/constants"
	requestutil "github.com/taibuivan/bookshelf/internal/platform/request"
	"github.com/taibuivan/bookshelf/internal/platform/respond"
	"github.com/taibuivan/bookshelf/internal/platform/validate"
)

const (
	maxBodyBytes   = 1 << 20
	maxQueryLength = 64 << 10

	fieldQuery     = "query"
	fieldVariables = "variables"
	fieldOperation = "operationName"

	contentTypeGraphQL = "application/graphql"
)

// GraphQLRequest is the standard GraphQL-over-HTTP request envelope.
type GraphQLRequest struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// requestError mirrors the GraphQL error shape so clients parse envelope
// failures the same way as execution errors.
type requestError struct {
	Message    string                 `json:"message"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

type Handler struct {
	schema graphql.Schema
}

func NewHandler(schema graphql.Schema) *Handler {
	return &Handler{schema: schema}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.serveGraphQL)
	router.Post("/", handler.serveGraphQL)
	router.MethodNotAllowed(handler.methodNotAllowed)
}

func (handler *Handler) serveGraphQL(writer http.ResponseWriter, request *http.Request) {
	payload, err := decodeRequest(writer, request)
	if err != nil {
		writeRequestError(writer, err)
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         handler.schema,
		RequestString:  payload.Query,
		VariableValues: payload.Variables,
		OperationName:  payload.OperationName,
		Context:        request.Context(),
	})

	// Execution errors travel inside the result with a 200, per GraphQL over HTTP.
	respond.JSON(writer, http.StatusOK, result)
}

func (handler *Handler) methodNotAllowed(writer http.ResponseWriter, request *http.Request) {
	writer.Header().Set("Allow", "GET, POST")
	writeRequestError(writer, apperr.MethodNotAllowed(request.Method))
}

// decodeRequest reads the envelope from the query string (GET) or the body
// (POST, either JSON or a raw application/graphql document).
func decodeRequest(writer http.ResponseWriter, request *http.Request) (GraphQLRequest, error) {
	var payload GraphQLRequest
	validator := &validate.Validator{}

	switch {
	case request.Method == http.MethodGet:
		values := request.URL.Query()
		payload.Query = values.Get(fieldQuery)
		payload.OperationName = values.Get(fieldOperation)

		if raw := values.Get(fieldVariables); raw != "" {
			err := json.Unmarshal([]byte(raw), &payload.Variables)
			validator.Custom(fieldVariables, err != nil, "Must be a JSON object")
		}

	case strings.HasPrefix(request.Header.Get(constants.HeaderContentType), contentTypeGraphQL):
		body, err := io.ReadAll(http.MaxBytesReader(writer, request.Body, maxBodyBytes))
		if err != nil {
			return payload, requestutil.BodyError(err)
		}
		payload.Query = string(body)

	default:
		if err := requestutil.DecodeJSON(writer, request, &payload, maxBodyBytes); err != nil {
			return payload, err
		}
	}

	validator.Required(fieldQuery, payload.Query).MaxLen(fieldQuery, payload.Query, maxQueryLength)
	return payload, validator.Err()
}

func writeRequestError(writer http.ResponseWriter, err error) {
	appError := apperr.As(err)
	if appError == nil {
		appError = apperr.Internal(err)
	}

	errs := []requestError{}
	for _, detail := range appError.Details {
		errs = append(errs, requestError{
			Message:    detail.Field + ": " + detail.Message,
			Extensions: map[string]interface{}{"code": appError.Code, "field": detail.Field},
		})
	}
	if len(errs) == 0 {
		errs = append(errs, requestError{
			Message:    appError.Message,
			Extensions: map[string]interface{}{"code": appError.Code},
		})
	}

	respond.JSON(writer, appError.HTTPStatus, map[string]interface{}{"errors": errs})
}
