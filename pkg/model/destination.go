package model

import "time"

// Destination is the full nested content document for one trek/destination.
// Dynamic collections are keyed by editor-assigned ids (object-of-objects in
// storage, never arrays); the how-to-reach/best-time/where-to-stay sections
// have closed key sets and are modeled as structs so the keys are
// compile-checked.
type Destination struct {
	ID          string `bson:"_id,omitempty" json:"id" validate:"omitempty,mongodb"`
	Name        string `bson:"name" json:"name" validate:"required,min=2,max=200"`
	Description string `bson:"description" json:"description" validate:"required"`
	Duration    string `bson:"duration" json:"duration" validate:"required"`
	Difficulty  string `bson:"difficulty" json:"difficulty" validate:"required"`
	BestTime    string `bson:"best_time" json:"best_time" validate:"required"`
	Category    string `bson:"category" json:"category" validate:"required"`
	Slug        string `bson:"slug" json:"slug" validate:"omitempty,max=200"`
	Altitude    string `bson:"altitude" json:"altitude"`
	Overview    string `bson:"overview" json:"overview"`

	HeroImageURL string `bson:"hero_image_url" json:"hero_image_url"`
	CardImageURL string `bson:"card_image_url" json:"card_image_url"`

	TravelTips []string `bson:"travel_tips" json:"travel_tips"`
	Featured   bool     `bson:"featured" json:"featured"`

	PlacesToVisit map[string]Place    `bson:"places_to_visit" json:"places_to_visit"`
	ThingsToDo    map[string]Activity `bson:"things_to_do" json:"things_to_do"`
	Itinerary     map[string]DayPlan  `bson:"itinerary" json:"itinerary"`
	FAQs          map[string]FAQ      `bson:"faqs" json:"faqs"`

	HowToReach      HowToReach      `bson:"how_to_reach" json:"how_to_reach"`
	BestTimeDetails BestTimeDetails `bson:"best_time_details" json:"best_time_details"`
	WhereToStay     WhereToStay     `bson:"where_to_stay" json:"where_to_stay"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type Place struct {
	ID          string   `bson:"id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	Description string   `bson:"description" json:"description"`
	Highlights  []string `bson:"highlights" json:"highlights"`
	ImageURL    string   `bson:"image_url" json:"image_url"`
}

type Activity struct {
	ID          string `bson:"id" json:"id"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	ImageURL    string `bson:"image_url" json:"image_url"`
}

type DayPlan struct {
	ID         string   `bson:"id" json:"id"`
	Day        int      `bson:"day" json:"day"`
	Title      string   `bson:"title" json:"title"`
	Activities []string `bson:"activities" json:"activities"`
	ImageURL   string   `bson:"image_url" json:"image_url"`
}

type FAQ struct {
	ID       string `bson:"id" json:"id"`
	Question string `bson:"question" json:"question"`
	Answer   string `bson:"answer" json:"answer"`
}

type TransportOption struct {
	Title   string   `bson:"title" json:"title"`
	Details []string `bson:"details" json:"details"`
}

type HowToReach struct {
	Air   TransportOption `bson:"air" json:"air"`
	Train TransportOption `bson:"train" json:"train"`
	Road  TransportOption `bson:"road" json:"road"`
}

type SeasonDetail struct {
	Season     string `bson:"season" json:"season"`
	Weather    string `bson:"weather" json:"weather"`
	WhyVisit   string `bson:"why_visit" json:"why_visit"`
	Events     string `bson:"events" json:"events"`
	Challenges string `bson:"challenges" json:"challenges"`
}

type BestTimeDetails struct {
	Winter  SeasonDetail `bson:"winter" json:"winter"`
	Summer  SeasonDetail `bson:"summer" json:"summer"`
	Monsoon SeasonDetail `bson:"monsoon" json:"monsoon"`
}

type StayOption struct {
	Category    string   `bson:"category" json:"category"`
	Description string   `bson:"description" json:"description"`
	Options     []string `bson:"options" json:"options"`
}

type WhereToStay struct {
	Budget   StayOption `bson:"budget" json:"budget"`
	Midrange StayOption `bson:"midrange" json:"midrange"`
	Luxury   StayOption `bson:"luxury" json:"luxury"`
}

// DestinationUpdate carries a partial document for PATCH. Required scalars
// use plain strings, empty meaning "not sent"; fields where the zero value
// is a legal target use pointers.
type DestinationUpdate struct {
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Duration    string  `json:"duration,omitempty"`
	Difficulty  string  `json:"difficulty,omitempty"`
	BestTime    string  `json:"best_time,omitempty"`
	Category    string  `json:"category,omitempty"`
	Altitude    *string `json:"altitude,omitempty"`
	Overview    *string `json:"overview,omitempty"`

	HeroImageURL *string `json:"hero_image_url,omitempty"`
	CardImageURL *string `json:"card_image_url,omitempty"`

	TravelTips *[]string `json:"travel_tips,omitempty"`
	Featured   *bool     `json:"featured,omitempty"`

	PlacesToVisit map[string]Place    `json:"places_to_visit,omitempty"`
	ThingsToDo    map[string]Activity `json:"things_to_do,omitempty"`
	Itinerary     map[string]DayPlan  `json:"itinerary,omitempty"`
	FAQs          map[string]FAQ      `json:"faqs,omitempty"`

	HowToReach      *HowToReach      `json:"how_to_reach,omitempty"`
	BestTimeDetails *BestTimeDetails `json:"best_time_details,omitempty"`
	WhereToStay     *WhereToStay     `json:"where_to_stay,omitempty"`
}

// GeneratedContent is the partial document proposed by the content-generation
// service given only a destination name. Entries arrive without ids; the
// editor assigns ids when the content is merged.
type GeneratedContent struct {
	Description string `json:"description"`
	Overview    string `json:"overview"`
	Duration    string `json:"duration"`
	Difficulty  string `json:"difficulty"`
	BestTime    string `json:"best_time"`
	Altitude    string `json:"altitude"`
	Category    string `json:"category"`

	TravelTips []string `json:"travel_tips"`

	PlacesToVisit []Place    `json:"places_to_visit"`
	ThingsToDo    []Activity `json:"things_to_do"`
	Itinerary     []DayPlan  `json:"itinerary"`
	FAQs          []FAQ      `json:"faqs"`

	HowToReach      *HowToReach      `json:"how_to_reach"`
	BestTimeDetails *BestTimeDetails `json:"best_time_details"`
	WhereToStay     *WhereToStay     `json:"where_to_stay"`
}
