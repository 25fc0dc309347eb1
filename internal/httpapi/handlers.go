package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hamed0406/deusexludus/internal/check"
	"github.com/hamed0406/deusexludus/internal/domain"
	"github.com/hamed0406/deusexludus/internal/repo"
)

var (
	errItemNotFound   = fmt.Errorf("item %w", repo.ErrNotFound)
	errEffectNotFound = fmt.Errorf("effect %w", repo.ErrNotFound)
)

type typesResponse struct {
	Actors []domain.ActorKind `json:"actors"`
	Items  []domain.ItemKind  `json:"items"`
}

func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	loc := s.Messages.Localizer(s.locale(r))
	out := typesResponse{Actors: s.Registry.ActorKinds(), Items: s.Registry.ItemKinds()}
	for i, k := range out.Actors {
		out.Actors[i].Label = loc("actor.type."+string(k.Type), k.Label)
	}
	for i, k := range out.Items {
		out.Items[i].Label = loc("item.type."+string(k.Type), k.Label)
	}
	writeJSON(w, http.StatusOK, out)
}

type resolvePayload struct {
	TargetNumber *int `json:"target_number"`
	Roll         *int `json:"roll"`
}

type resolveResponse struct {
	check.Result
	Tier  string `json:"tier"`
	Label string `json:"label"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var p resolvePayload
	if err := decode(w, r, &p); err != nil || p.TargetNumber == nil || p.Roll == nil {
		writeError(w, http.StatusBadRequest, "bad payload: target_number and roll are required")
		return
	}
	res, err := check.Resolve(*p.TargetNumber, *p.Roll)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resolveResponse{Result: res, Tier: res.Tier().String(), Label: res.Label()})
}

func (s *Server) handleListActors(w http.ResponseWriter, r *http.Request) {
	as, err := s.Actors.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if as == nil {
		as = []*domain.Actor{}
	}
	writeJSON(w, http.StatusOK, as)
}

func (s *Server) handleGetActor(w http.ResponseWriter, r *http.Request) {
	a, err := s.Actors.Get(r.Context(), actorID(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// createPayload overrides the variant defaults; omitted fields keep them.
type createPayload struct {
	Type       domain.ActorType   `json:"type"`
	Name       string             `json:"name"`
	Notes      string             `json:"notes"`
	Attributes *domain.Attributes `json:"attributes"`
	Skills     map[string]int     `json:"skills"`
	Population *int               `json:"population"`
	Resources  *int               `json:"resources"`
	Items      []domain.Item      `json:"items"`
	Effects    []domain.Effect    `json:"effects"`
}

func (s *Server) handleCreateActor(w http.ResponseWriter, r *http.Request) {
	var p createPayload
	if err := decode(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad payload")
		return
	}
	a, err := s.Registry.NewActor(p.Type, p.Name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	a.Notes = p.Notes
	if p.Attributes != nil {
		a.Attributes = *p.Attributes
	}
	if len(p.Skills) > 0 && a.Skills == nil {
		a.Skills = map[string]int{}
	}
	for k, v := range p.Skills {
		a.Skills[k] = v
	}
	if p.Population != nil {
		a.Population = *p.Population
	}
	if p.Resources != nil {
		a.Resources = *p.Resources
	}
	for _, it := range p.Items {
		a.AddItem(it)
	}
	if p.Effects != nil {
		a.Effects = p.Effects
	}
	if err := s.Registry.Validate(a); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.Actors.Add(r.Context(), a); err != nil {
		s.fail(w, r, err)
		return
	}
	s.Logger.Info("actor_created",
		zap.String("actor_id", string(a.ID)),
		zap.String("type", string(a.Type)),
		zap.String("name", a.Name),
	)
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleUpdateActor(w http.ResponseWriter, r *http.Request) {
	var in domain.Actor
	if err := decode(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "bad payload")
		return
	}
	s.editActor(w, r, func(existing *domain.Actor) (int, any, error) {
		in.ID = existing.ID
		in.CreatedAt = existing.CreatedAt
		if in.Type == "" {
			in.Type = existing.Type
		}
		for i := range in.Items {
			if in.Items[i].ID == "" {
				in.Items[i].ID = domain.NewItemID()
			}
		}
		if err := s.Registry.Validate(&in); err != nil {
			return 0, nil, err
		}
		*existing = in
		s.Logger.Info("actor_updated", zap.String("actor_id", string(in.ID)))
		return http.StatusOK, existing, nil
	})
}

func (s *Server) handleDeleteActor(w http.ResponseWriter, r *http.Request) {
	id := actorID(r)
	unlock := s.edits.lock(id)
	defer unlock()
	if err := s.Actors.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	s.Logger.Info("actor_deleted", zap.String("actor_id", string(id)))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSheet(w http.ResponseWriter, r *http.Request) {
	a, err := s.Actors.Get(r.Context(), actorID(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sheet, err := s.Registry.Sheet(a, s.Messages.Localizer(s.locale(r)))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

type itemPayload struct {
	Type         domain.ItemType `json:"type"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	TargetNumber *int            `json:"target_number"`
	Damage       *int            `json:"damage"`
	Defense      *int            `json:"defense"`
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var p itemPayload
	if err := decode(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad payload")
		return
	}
	it, err := s.Registry.NewItem(p.Type, p.Name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	it.Description = p.Description
	if p.TargetNumber != nil {
		it.TargetNumber = *p.TargetNumber
	}
	if p.Damage != nil {
		it.Damage = *p.Damage
	}
	if p.Defense != nil {
		it.Defense = *p.Defense
	}
	if err := s.Registry.ValidateItem(it); err != nil {
		s.fail(w, r, err)
		return
	}
	s.editActor(w, r, func(a *domain.Actor) (int, any, error) {
		it = a.AddItem(it)
		s.Logger.Info("item_added",
			zap.String("actor_id", string(a.ID)),
			zap.String("item_id", string(it.ID)),
			zap.String("type", string(it.Type)),
		)
		return http.StatusCreated, it, nil
	})
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	s.editActor(w, r, func(a *domain.Actor) (int, any, error) {
		if !a.RemoveItem(domain.ItemID(chi.URLParam(r, "itemID"))) {
			return 0, nil, errItemNotFound
		}
		return http.StatusNoContent, nil, nil
	})
}

func (s *Server) handleAdjustAttribute(w http.ResponseWriter, r *http.Request) {
	s.editActor(w, r, func(a *domain.Actor) (int, any, error) {
		res, err := a.AdjustAttribute(chi.URLParam(r, "attr"), domain.Direction(chi.URLParam(r, "direction")))
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, res, nil
	})
}

type effectPayload struct {
	Label     string `json:"label"`
	Disabled  bool   `json:"disabled"`
	Temporary bool   `json:"temporary"`
	Sort      int    `json:"sort"`
}

func (s *Server) handleAddEffect(w http.ResponseWriter, r *http.Request) {
	var p effectPayload
	if err := decode(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad payload")
		return
	}
	e := domain.Effect{Label: strings.TrimSpace(p.Label), Disabled: p.Disabled, Temporary: p.Temporary, Sort: p.Sort}
	if err := domain.ValidateEffect(e); err != nil {
		s.fail(w, r, err)
		return
	}
	s.editActor(w, r, func(a *domain.Actor) (int, any, error) {
		e = a.AddEffect(e)
		s.Logger.Info("effect_added",
			zap.String("actor_id", string(a.ID)),
			zap.String("effect_id", e.ID),
		)
		return http.StatusCreated, e, nil
	})
}

func (s *Server) handleRemoveEffect(w http.ResponseWriter, r *http.Request) {
	s.editActor(w, r, func(a *domain.Actor) (int, any, error) {
		if !a.RemoveEffect(chi.URLParam(r, "effectID")) {
			return 0, nil, errEffectNotFound
		}
		return http.StatusNoContent, nil, nil
	})
}

func (s *Server) handleToggleEffect(w http.ResponseWriter, r *http.Request) {
	s.editActor(w, r, func(a *domain.Actor) (int, any, error) {
		e, ok := a.ToggleEffect(chi.URLParam(r, "effectID"))
		if !ok {
			return 0, nil, errEffectNotFound
		}
		return http.StatusOK, e, nil
	})
}

// editActor loads the actor, applies edit and stores the result while
// holding the actor's lock, so concurrent edits never drop each other.
// A nil body writes only the status code.
func (s *Server) editActor(w http.ResponseWriter, r *http.Request, edit func(a *domain.Actor) (int, any, error)) {
	id := actorID(r)
	unlock := s.edits.lock(id)
	defer unlock()

	a, err := s.Actors.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	code, body, err := edit(a)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.Actors.Update(r.Context(), a); err != nil {
		s.fail(w, r, err)
		return
	}
	if body == nil {
		w.WriteHeader(code)
		return
	}
	writeJSON(w, code, body)
}

func (s *Server) handleRoll(w http.ResponseWriter, r *http.Request) {
	rep, err := s.Roller.RollSkill(r.Context(), actorID(r), chi.URLParam(r, "skill"), s.locale(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	recs, err := s.Roller.History(r.Context(), actorID(r), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func actorID(r *http.Request) domain.ActorID {
	return domain.ActorID(chi.URLParam(r, "id"))
}
