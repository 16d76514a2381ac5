package request_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"leavetrack/internal/identity"
	"leavetrack/internal/request"
	requesterrors "leavetrack/internal/request/errors"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeRequestService struct {
	createFn  func(ctx context.Context, actor identity.Actor, req request.CreateRequest) (request.RequestResponse, error)
	decideFn  func(ctx context.Context, actor identity.Actor, requestID int64, req request.DecideRequest) (request.RequestResponse, error)
	getByIDFn func(ctx context.Context, actor identity.Actor, requestID int64) (request.RequestResponse, error)
	getAllFn  func(ctx context.Context, actor identity.Actor, filter request.ListRequestsFilter) ([]request.RequestResponse, error)
}

func (f *fakeRequestService) Create(ctx context.Context, actor identity.Actor, req request.CreateRequest) (request.RequestResponse, error) {
	return f.createFn(ctx, actor, req)
}
func (f *fakeRequestService) Decide(ctx context.Context, actor identity.Actor, requestID int64, req request.DecideRequest) (request.RequestResponse, error) {
	return f.decideFn(ctx, actor, requestID, req)
}
func (f *fakeRequestService) GetByID(ctx context.Context, actor identity.Actor, requestID int64) (request.RequestResponse, error) {
	return f.getByIDFn(ctx, actor, requestID)
}
func (f *fakeRequestService) GetAll(ctx context.Context, actor identity.Actor, filter request.ListRequestsFilter) ([]request.RequestResponse, error) {
	return f.getAllFn(ctx, actor, filter)
}

func actorContext(t *testing.T, w *httptest.ResponseRecorder, actorID string, roles []string) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(w)
	c.Set(identity.ContextActorID, actorID)
	c.Set(identity.ContextRoles, roles)
	return c
}

func TestRequestHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		actorID := uuid.New().String()
		svc := &fakeRequestService{
			createFn: func(ctx context.Context, actor identity.Actor, req request.CreateRequest) (request.RequestResponse, error) {
				assert.Equal(t, actorID, actor.ID)
				assert.Equal(t, request.TypeVacation, req.Type)
				return request.RequestResponse{
					ID:            1,
					PersonID:      actorID,
					Type:          req.Type,
					StartDate:     req.StartDate,
					EndDate:       req.EndDate,
					RequestedDays: 5,
					Status:        request.StatusPending,
				}, nil
			},
		}

		h := request.NewHandler(svc)
		w := httptest.NewRecorder()
		c := actorContext(t, w, actorID, []string{identity.RoleUser})
		body := `{"type":"vacation","start_date":"2027-03-01","end_date":"2027-03-05","reason":"holiday"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/requests", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got request.RequestResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, request.StatusPending, got.Status)
		assert.Equal(t, 5, got.RequestedDays)
	})

	t.Run("negative unknown type rejected at binding", func(t *testing.T) {
		svc := &fakeRequestService{}
		h := request.NewHandler(svc)
		w := httptest.NewRecorder()
		c := actorContext(t, w, uuid.New().String(), []string{identity.RoleUser})
		body := `{"type":"sabbatical","start_date":"2027-03-01","end_date":"2027-03-05"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/requests", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("negative service failure carries domain code", func(t *testing.T) {
		svc := &fakeRequestService{
			createFn: func(ctx context.Context, actor identity.Actor, req request.CreateRequest) (request.RequestResponse, error) {
				return request.RequestResponse{}, requesterrors.ErrInsufficientNotice
			},
		}
		h := request.NewHandler(svc)
		w := httptest.NewRecorder()
		c := actorContext(t, w, uuid.New().String(), []string{identity.RoleUser})
		body := `{"type":"vacation","start_date":"2027-03-01","end_date":"2027-03-05"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/requests", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, requesterrors.CodeInsufficientNotice, env.Error.Code)
	})

	t.Run("success releases idempotency lock and fills cache", func(t *testing.T) {
		actorID := uuid.New().String()
		rdb, mock := redismock.NewClientMock()

		resp := request.RequestResponse{ID: 1, PersonID: actorID, Type: request.TypeVacation, Status: request.StatusPending}
		payload, err := json.Marshal(resp)
		assert.NoError(t, err)

		mock.Regexp().ExpectSet("idem:resp:.+", payload, 24*time.Hour).SetVal("OK")
		mock.Regexp().ExpectDel("idem:lock:.+").SetVal(1)

		svc := &fakeRequestService{
			createFn: func(ctx context.Context, actor identity.Actor, req request.CreateRequest) (request.RequestResponse, error) {
				return resp, nil
			},
		}
		h := request.NewHandlerWithRedis(svc, rdb)
		w := httptest.NewRecorder()
		c := actorContext(t, w, actorID, []string{identity.RoleUser})
		body := `{"type":"vacation","start_date":"2027-03-01","end_date":"2027-03-05"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/requests", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("idempotency_lock_key", "idem:lock:abc")
		c.Set("idempotency_cache_key", "idem:resp:abc")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestRequestHandler_Decide(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		actorID := uuid.New().String()
		svc := &fakeRequestService{
			decideFn: func(ctx context.Context, actor identity.Actor, requestID int64, req request.DecideRequest) (request.RequestResponse, error) {
				assert.Equal(t, int64(42), requestID)
				assert.True(t, *req.Approved)
				return request.RequestResponse{ID: requestID, Status: request.StatusApproved}, nil
			},
		}
		h := request.NewHandler(svc)
		w := httptest.NewRecorder()
		c := actorContext(t, w, actorID, []string{identity.RolePM})
		c.Params = gin.Params{{Key: "id", Value: "42"}}
		body := `{"approved":true}`
		c.Request = httptest.NewRequest(http.MethodPost, "/requests/42/decide", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Decide(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative explicit false still binds", func(t *testing.T) {
		svc := &fakeRequestService{
			decideFn: func(ctx context.Context, actor identity.Actor, requestID int64, req request.DecideRequest) (request.RequestResponse, error) {
				assert.False(t, *req.Approved)
				assert.Equal(t, "coverage conflict", req.Reason)
				return request.RequestResponse{ID: requestID, Status: request.StatusRejected}, nil
			},
		}
		h := request.NewHandler(svc)
		w := httptest.NewRecorder()
		c := actorContext(t, w, uuid.New().String(), []string{identity.RolePM})
		c.Params = gin.Params{{Key: "id", Value: "42"}}
		body := `{"approved":false,"reason":"coverage conflict"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/requests/42/decide", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Decide(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative malformed id", func(t *testing.T) {
		svc := &fakeRequestService{}
		h := request.NewHandler(svc)
		w := httptest.NewRecorder()
		c := actorContext(t, w, uuid.New().String(), []string{identity.RolePM})
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		c.Request = httptest.NewRequest(http.MethodPost, "/requests/abc/decide", strings.NewReader(`{"approved":true}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Decide(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative already processed maps to conflict", func(t *testing.T) {
		svc := &fakeRequestService{
			decideFn: func(ctx context.Context, actor identity.Actor, requestID int64, req request.DecideRequest) (request.RequestResponse, error) {
				return request.RequestResponse{}, requesterrors.ErrAlreadyProcessed
			},
		}
		h := request.NewHandler(svc)
		w := httptest.NewRecorder()
		c := actorContext(t, w, uuid.New().String(), []string{identity.RolePM})
		c.Params = gin.Params{{Key: "id", Value: "42"}}
		c.Request = httptest.NewRequest(http.MethodPost, "/requests/42/decide", strings.NewReader(`{"approved":true}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Decide(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, requesterrors.CodeAlreadyProcessed, env.Error.Code)
	})
}

func TestRequestHandler_GetAll(t *testing.T) {
	t.Run("success paginates", func(t *testing.T) {
		svc := &fakeRequestService{
			getAllFn: func(ctx context.Context, actor identity.Actor, filter request.ListRequestsFilter) ([]request.RequestResponse, error) {
				out := make([]request.RequestResponse, 15)
				for i := range out {
					out[i] = request.RequestResponse{ID: int64(i + 1)}
				}
				return out, nil
			},
		}
		h := request.NewHandler(svc)
		w := httptest.NewRecorder()
		c := actorContext(t, w, uuid.New().String(), []string{identity.RoleUser})
		c.Request = httptest.NewRequest(http.MethodGet, "/requests?page=2&page_size=10", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var got []request.RequestResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got, 5)
	})
}
