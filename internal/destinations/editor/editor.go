// Package editor maintains the in-memory destination document during an
// authoring session. All mutations are synchronous and touch only the named
// collection; nothing here performs I/O. Persistence and content generation
// are the service layer's business.
package editor

import (
	"trailhead/pkg/model"

	"github.com/google/uuid"
)

// Collection names the dynamic id-keyed collections of a destination
// document. The fixed-key sections (how_to_reach, best_time_details,
// where_to_stay) are plain struct fields and are edited by assignment.
type Collection string

const (
	PlacesToVisit Collection = "places_to_visit"
	ThingsToDo    Collection = "things_to_do"
	Itinerary     Collection = "itinerary"
	FAQs          Collection = "faqs"
)

// Editor owns one document for the duration of an editing session. Exactly
// one goroutine drives an Editor; there is no locking by design.
type Editor struct {
	doc model.Destination
}

// New starts a create-flow session with an empty document.
func New() *Editor {
	return &Editor{doc: emptyDocument()}
}

// Load starts an edit-flow session hydrated from a persisted document.
// Nil collection maps are initialized so mutations never hit a nil map.
func Load(doc model.Destination) *Editor {
	cloned := cloneDocument(doc)
	if cloned.PlacesToVisit == nil {
		cloned.PlacesToVisit = map[string]model.Place{}
	}
	if cloned.ThingsToDo == nil {
		cloned.ThingsToDo = map[string]model.Activity{}
	}
	if cloned.Itinerary == nil {
		cloned.Itinerary = map[string]model.DayPlan{}
	}
	if cloned.FAQs == nil {
		cloned.FAQs = map[string]model.FAQ{}
	}
	return &Editor{doc: cloned}
}

func emptyDocument() model.Destination {
	return model.Destination{
		TravelTips:    []string{},
		PlacesToVisit: map[string]model.Place{},
		ThingsToDo:    map[string]model.Activity{},
		Itinerary:     map[string]model.DayPlan{},
		FAQs:          map[string]model.FAQ{},
	}
}

// newID returns a fresh collection-entry id. A 128-bit random UUID cannot
// collide under rapid successive creates, unlike timestamp-derived ids.
func newID() string {
	return uuid.NewString()
}

// SetScalars overwrites the document's scalar fields from the given
// document, leaving collections untouched.
func (e *Editor) SetScalars(d model.Destination) {
	e.doc.Name = d.Name
	e.doc.Description = d.Description
	e.doc.Duration = d.Duration
	e.doc.Difficulty = d.Difficulty
	e.doc.BestTime = d.BestTime
	e.doc.Category = d.Category
	e.doc.Slug = d.Slug
	e.doc.Altitude = d.Altitude
	e.doc.Overview = d.Overview
	e.doc.HeroImageURL = d.HeroImageURL
	e.doc.CardImageURL = d.CardImageURL
	e.doc.TravelTips = append([]string(nil), d.TravelTips...)
	e.doc.Featured = d.Featured
}

// AddPlace stores a new place under a generated id and returns the id.
func (e *Editor) AddPlace(p model.Place) (string, error) {
	if p.Name == "" || p.Description == "" {
		return "", errMissingEntryFields(PlacesToVisit, "name", "description")
	}
	p.ID = newID()
	if p.Highlights == nil {
		p.Highlights = []string{}
	}
	e.doc.PlacesToVisit[p.ID] = p
	return p.ID, nil
}

// UpdatePlace shallow-merges the set fields onto an existing place.
// A silent no-op when the id is unknown; the admin UI only references ids
// it rendered from the current state.
func (e *Editor) UpdatePlace(id string, upd PlaceUpdate) {
	p, ok := e.doc.PlacesToVisit[id]
	if !ok {
		return
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Highlights != nil {
		p.Highlights = append([]string(nil), *upd.Highlights...)
	}
	if upd.ImageURL != nil {
		p.ImageURL = *upd.ImageURL
	}
	e.doc.PlacesToVisit[id] = p
}

func (e *Editor) AddActivity(a model.Activity) (string, error) {
	if a.Title == "" {
		return "", errMissingEntryFields(ThingsToDo, "title")
	}
	a.ID = newID()
	e.doc.ThingsToDo[a.ID] = a
	return a.ID, nil
}

func (e *Editor) UpdateActivity(id string, upd ActivityUpdate) {
	a, ok := e.doc.ThingsToDo[id]
	if !ok {
		return
	}
	if upd.Title != nil {
		a.Title = *upd.Title
	}
	if upd.Description != nil {
		a.Description = *upd.Description
	}
	if upd.ImageURL != nil {
		a.ImageURL = *upd.ImageURL
	}
	e.doc.ThingsToDo[id] = a
}

func (e *Editor) AddDayPlan(d model.DayPlan) (string, error) {
	if d.Day < 1 || d.Title == "" {
		return "", errMissingEntryFields(Itinerary, "day", "title")
	}
	d.ID = newID()
	if d.Activities == nil {
		d.Activities = []string{}
	}
	e.doc.Itinerary[d.ID] = d
	return d.ID, nil
}

func (e *Editor) UpdateDayPlan(id string, upd DayPlanUpdate) {
	d, ok := e.doc.Itinerary[id]
	if !ok {
		return
	}
	if upd.Day != nil {
		d.Day = *upd.Day
	}
	if upd.Title != nil {
		d.Title = *upd.Title
	}
	if upd.Activities != nil {
		d.Activities = append([]string(nil), *upd.Activities...)
	}
	if upd.ImageURL != nil {
		d.ImageURL = *upd.ImageURL
	}
	e.doc.Itinerary[id] = d
}

func (e *Editor) AddFAQ(f model.FAQ) (string, error) {
	if f.Question == "" || f.Answer == "" {
		return "", errMissingEntryFields(FAQs, "question", "answer")
	}
	f.ID = newID()
	e.doc.FAQs[f.ID] = f
	return f.ID, nil
}

func (e *Editor) UpdateFAQ(id string, upd FAQUpdate) {
	f, ok := e.doc.FAQs[id]
	if !ok {
		return
	}
	if upd.Question != nil {
		f.Question = *upd.Question
	}
	if upd.Answer != nil {
		f.Answer = *upd.Answer
	}
	e.doc.FAQs[id] = f
}

// Remove deletes exactly one entry from the named collection. Unknown ids
// and unknown collections are silent no-ops. Remaining itinerary day numbers
// are deliberately not resequenced; that is left to the author.
func (e *Editor) Remove(c Collection, id string) {
	switch c {
	case PlacesToVisit:
		delete(e.doc.PlacesToVisit, id)
	case ThingsToDo:
		delete(e.doc.ThingsToDo, id)
	case Itinerary:
		delete(e.doc.Itinerary, id)
	case FAQs:
		delete(e.doc.FAQs, id)
	}
}

// Len reports the size of the named collection.
func (e *Editor) Len(c Collection) int {
	switch c {
	case PlacesToVisit:
		return len(e.doc.PlacesToVisit)
	case ThingsToDo:
		return len(e.doc.ThingsToDo)
	case Itinerary:
		return len(e.doc.Itinerary)
	case FAQs:
		return len(e.doc.FAQs)
	}
	return 0
}

func (e *Editor) SetHowToReach(h model.HowToReach)           { e.doc.HowToReach = h }
func (e *Editor) SetBestTimeDetails(b model.BestTimeDetails) { e.doc.BestTimeDetails = b }
func (e *Editor) SetWhereToStay(w model.WhereToStay)         { e.doc.WhereToStay = w }

// Serialize returns a snapshot of the whole document suitable for handing
// to the persistence layer. It performs no validation; ValidateRequired is
// the explicit gate before save.
func (e *Editor) Serialize() model.Destination {
	return cloneDocument(e.doc)
}

// requiredScalarFields is the canonical order for missing-field reporting.
var requiredScalarFields = []struct {
	name  string
	value func(*model.Destination) string
}{
	{"name", func(d *model.Destination) string { return d.Name }},
	{"description", func(d *model.Destination) string { return d.Description }},
	{"duration", func(d *model.Destination) string { return d.Duration }},
	{"difficulty", func(d *model.Destination) string { return d.Difficulty }},
	{"best_time", func(d *model.Destination) string { return d.BestTime }},
	{"category", func(d *model.Destination) string { return d.Category }},
}

// ValidateRequired returns the names of required scalar fields that are
// still empty, in canonical order. An empty slice means the document may be
// saved.
func (e *Editor) ValidateRequired() []string {
	missing := []string{}
	for _, f := range requiredScalarFields {
		if f.value(&e.doc) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// DeriveSlugIfEmpty fills the slug from the name. Idempotent: an existing
// non-empty slug is never overwritten.
func (e *Editor) DeriveSlugIfEmpty() {
	if e.doc.Slug != "" || e.doc.Name == "" {
		return
	}
	e.doc.Slug = Slugify(e.doc.Name)
}

// ApplyGenerated merges AI-proposed content into the document. Scalars fill
// only empty fields; collection entries go through the same add path as
// manual entry so ids are always editor-assigned. Entries that fail the
// add-time field checks are skipped rather than failing the whole merge.
func (e *Editor) ApplyGenerated(gen model.GeneratedContent) {
	if e.doc.Description == "" {
		e.doc.Description = gen.Description
	}
	if e.doc.Overview == "" {
		e.doc.Overview = gen.Overview
	}
	if e.doc.Duration == "" {
		e.doc.Duration = gen.Duration
	}
	if e.doc.Difficulty == "" {
		e.doc.Difficulty = gen.Difficulty
	}
	if e.doc.BestTime == "" {
		e.doc.BestTime = gen.BestTime
	}
	if e.doc.Altitude == "" {
		e.doc.Altitude = gen.Altitude
	}
	if e.doc.Category == "" {
		e.doc.Category = gen.Category
	}
	if len(e.doc.TravelTips) == 0 && len(gen.TravelTips) > 0 {
		e.doc.TravelTips = append([]string(nil), gen.TravelTips...)
	}

	for _, p := range gen.PlacesToVisit {
		_, _ = e.AddPlace(p)
	}
	for _, a := range gen.ThingsToDo {
		_, _ = e.AddActivity(a)
	}
	for _, d := range gen.Itinerary {
		_, _ = e.AddDayPlan(d)
	}
	for _, f := range gen.FAQs {
		_, _ = e.AddFAQ(f)
	}

	if gen.HowToReach != nil {
		e.doc.HowToReach = *gen.HowToReach
	}
	if gen.BestTimeDetails != nil {
		e.doc.BestTimeDetails = *gen.BestTimeDetails
	}
	if gen.WhereToStay != nil {
		e.doc.WhereToStay = *gen.WhereToStay
	}
}

func cloneDocument(d model.Destination) model.Destination {
	out := d

	out.TravelTips = append([]string(nil), d.TravelTips...)

	if d.PlacesToVisit != nil {
		out.PlacesToVisit = make(map[string]model.Place, len(d.PlacesToVisit))
		for id, p := range d.PlacesToVisit {
			p.Highlights = append([]string(nil), p.Highlights...)
			out.PlacesToVisit[id] = p
		}
	}
	if d.ThingsToDo != nil {
		out.ThingsToDo = make(map[string]model.Activity, len(d.ThingsToDo))
		for id, a := range d.ThingsToDo {
			out.ThingsToDo[id] = a
		}
	}
	if d.Itinerary != nil {
		out.Itinerary = make(map[string]model.DayPlan, len(d.Itinerary))
		for id, day := range d.Itinerary {
			day.Activities = append([]string(nil), day.Activities...)
			out.Itinerary[id] = day
		}
	}
	if d.FAQs != nil {
		out.FAQs = make(map[string]model.FAQ, len(d.FAQs))
		for id, f := range d.FAQs {
			out.FAQs[id] = f
		}
	}

	out.HowToReach.Air.Details = append([]string(nil), d.HowToReach.Air.Details...)
	out.HowToReach.Train.Details = append([]string(nil), d.HowToReach.Train.Details...)
	out.HowToReach.Road.Details = append([]string(nil), d.HowToReach.Road.Details...)
	out.WhereToStay.Budget.Options = append([]string(nil), d.WhereToStay.Budget.Options...)
	out.WhereToStay.Midrange.Options = append([]string(nil), d.WhereToStay.Midrange.Options...)
	out.WhereToStay.Luxury.Options = append([]string(nil), d.WhereToStay.Luxury.Options...)

	return out
}
