package itemhttp

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	itemapp "gitlab.com/campusfound/campusfound-backend/internal/application/item"
	itemcmd "gitlab.com/campusfound/campusfound-backend/internal/application/item/cmd"
	itemquery "gitlab.com/campusfound/campusfound-backend/internal/application/item/query"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/item"
	"gitlab.com/campusfound/campusfound-backend/internal/ports/http/middlewares"
	"gitlab.com/campusfound/campusfound-backend/pkg/ctxs"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/httpx"
	"gitlab.com/campusfound/campusfound-backend/pkg/otelx"
	"gitlab.com/campusfound/campusfound-backend/pkg/sanitizex"
)

var (
	tracer = otel.Tracer("campusfound/internal/ports/http/item")
	logger = otelslog.NewLogger("campusfound/internal/ports/http/item")
)

type HTTP struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	cmd        itemapp.Command
	query      *itemquery.Handler
	middleware *middlewares.Middleware
	errhandler *httpx.ErrorHandler
}

type Args struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	ItemApp    *itemapp.App
	Middleware *middlewares.Middleware
	Errhandler *httpx.ErrorHandler
}

func NewHTTP(args Args) *HTTP {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &HTTP{
		tracer:     args.Tracer,
		logger:     args.Logger,
		cmd:        args.ItemApp.Command,
		query:      args.ItemApp.Query,
		middleware: args.Middleware,
		errhandler: args.Errhandler,
	}
}

func (h *HTTP) Route(r chi.Router) {
	r.Route("/v1/items", func(r chi.Router) {
		r.Use(h.middleware.Auth)

		r.Post("/", h.Report)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Post("/{id}/resolve", h.Resolve)
		r.Get("/{id}/matches", h.GetMatches)
		r.Put("/{id}/matches", h.IngestMatches)
	})
}

// ItemResponse is the wire shape shared by all item endpoints.
type ItemResponse struct {
	ID          string    `json:"id"`
	ReporterID  string    `json:"reporter_id"`
	Kind        string    `json:"kind"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func itemResponse(i *item.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID().String(),
		ReporterID:  i.ReporterID().String(),
		Kind:        i.Kind().String(),
		Name:        i.Name(),
		Description: i.Description(),
		Location:    i.Location(),
		PhotoURL:    i.PhotoURL(),
		Status:      i.Status().String(),
		CreatedAt:   i.CreatedAt(),
		UpdatedAt:   i.UpdatedAt(),
	}
}

func (h *HTTP) Report(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "HTTP.ReportItem")
	defer span.End()

	ctxUser, err := ctxs.UserFromCtx(ctx)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to get user from context")
		return
	}
	ctxUser.SetSpanAttrs(span)

	if err := r.ParseMultipartForm(item.MaxPhotoSize); err != nil {
		err = errorx.NewInvalidRequest().WithCause(err)
		h.errhandler.HandleError(w, r, span, err, "failed to parse multipart form")
		return
	}

	kind := sanitizex.CleanSingleLine(r.FormValue("kind"))
	name := sanitizex.CleanSingleLine(r.FormValue("name"))
	description := sanitizex.CleanMultiline(r.FormValue("description"))
	location := sanitizex.CleanSingleLine(r.FormValue("location"))

	otelx.SetSpanAttrs(span, map[string]any{"item.kind": kind})

	err = validation.Errors{
		"kind":     validation.Validate(kind, validation.Required, validation.In(item.KindLost.String(), item.KindFound.String())),
		"name":     validation.Validate(name, validation.Required, validation.Length(item.MinNameLen, item.MaxNameLen)),
		"location": validation.Validate(location, validation.Required, validation.Length(1, item.MaxLocationLen)),
	}.Filter()
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate request body")
		return
	}

	cmd := itemcmd.Report{
		ReporterID:  ctxUser.ID,
		Kind:        item.Kind(kind),
		Name:        name,
		Description: description,
		Location:    location,
	}

	file, header, err := r.FormFile("photo")
	if err == nil {
		defer func() {
			if cerr := file.Close(); cerr != nil {
				h.logger.Warn("failed to close photo file", slog.String("error", cerr.Error()))
			}
		}()
		cmd.Photo = file
		cmd.PhotoSize = header.Size
		cmd.PhotoContentType = header.Header.Get("Content-Type")
	}

	it, err := h.cmd.Report.Handle(ctx, cmd)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to report item")
		return
	}

	httpx.Success(w, r, http.StatusCreated, httpx.Envelope{"item": itemResponse(it)})
}

func (h *HTTP) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "HTTP.ListItems")
	defer span.End()

	q := itemquery.ListItems{
		Kind:   item.Kind(sanitizex.CleanSingleLine(r.URL.Query().Get("kind"))),
		Status: item.Status(sanitizex.CleanSingleLine(r.URL.Query().Get("status"))),
	}
	q.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	q.Size, _ = strconv.Atoi(r.URL.Query().Get("size"))

	if q.Kind != "" && !q.Kind.Valid() {
		h.errhandler.HandleError(w, r, span, item.ErrInvalidKind, "invalid item kind")
		return
	}

	items, err := h.query.ListItems(ctx, q)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to list items")
		return
	}

	res := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		res = append(res, itemResponse(it))
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"items": res})
}

func (h *HTTP) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "HTTP.GetItem")
	defer span.End()

	id, err := itemIDFromURL(r)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "invalid item id")
		return
	}

	it, err := h.query.GetItem(ctx, id)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to get item")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"item": itemResponse(it)})
}

func (h *HTTP) Resolve(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "HTTP.ResolveItem")
	defer span.End()

	ctxUser, err := ctxs.UserFromCtx(ctx)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to get user from context")
		return
	}
	ctxUser.SetSpanAttrs(span)

	id, err := itemIDFromURL(r)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "invalid item id")
		return
	}

	err = h.cmd.Resolve.Handle(ctx, itemcmd.Resolve{ItemID: id, UserID: ctxUser.ID})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to resolve item")
		return
	}

	httpx.Success(w, r, http.StatusOK, nil)
}

type MatchResponse struct {
	MatchedItemID    string    `json:"matched_item_id"`
	OverallScore     float64   `json:"overall_score"`
	NameScore        float64   `json:"name_score"`
	DescriptionScore float64   `json:"description_score"`
	LocationScore    float64   `json:"location_score"`
	ImageScore       float64   `json:"image_score"`
	CreatedAt        time.Time `json:"created_at"`
}

func (h *HTTP) GetMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "HTTP.GetItemMatches")
	defer span.End()

	id, err := itemIDFromURL(r)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "invalid item id")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	matches, err := h.query.GetTopMatches(ctx, id, limit)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to get item matches")
		return
	}

	res := make([]MatchResponse, 0, len(matches))
	for _, m := range matches {
		res = append(res, MatchResponse{
			MatchedItemID:    m.MatchedItemID.String(),
			OverallScore:     m.Scores.Overall,
			NameScore:        m.Scores.Name,
			DescriptionScore: m.Scores.Description,
			LocationScore:    m.Scores.Location,
			ImageScore:       m.Scores.Image,
			CreatedAt:        m.CreatedAt,
		})
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"matches": res})
}

type IngestMatchesRequest struct {
	Matches []IngestMatchInput `json:"matches"`
}

type IngestMatchInput struct {
	MatchedItemID    uuid.UUID `json:"matched_item_id"`
	OverallScore     float64   `json:"overall_score"`
	NameScore        float64   `json:"name_score"`
	DescriptionScore float64   `json:"description_score"`
	LocationScore    float64   `json:"location_score"`
	ImageScore       float64   `json:"image_score"`
}

func (r *IngestMatchesRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Matches, validation.Required),
	)
}

// IngestMatches receives the latest match snapshot from the external
// matching engine and replaces the stored set.
func (h *HTTP) IngestMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "HTTP.IngestItemMatches")
	defer span.End()

	id, err := itemIDFromURL(r)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "invalid item id")
		return
	}

	var req IngestMatchesRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to read json")
		return
	}

	if err := req.Validate(); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate request body")
		return
	}

	cmd := itemcmd.IngestMatches{ItemID: id}
	for _, m := range req.Matches {
		cmd.Matches = append(cmd.Matches, itemcmd.MatchInput{
			MatchedItemID: item.ID(m.MatchedItemID),
			Scores: item.Scores{
				Overall:     m.OverallScore,
				Name:        m.NameScore,
				Description: m.DescriptionScore,
				Location:    m.LocationScore,
				Image:       m.ImageScore,
			},
		})
	}

	if err := h.cmd.IngestMatches.Handle(ctx, cmd); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to ingest item matches")
		return
	}

	httpx.Success(w, r, http.StatusOK, nil)
}

func itemIDFromURL(r *http.Request) (item.ID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return item.ID{}, errorx.NewInvalidRequest().WithCause(err)
	}
	return item.ID(id), nil
}
