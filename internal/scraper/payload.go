package scraper

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Wire types for the Zomato getPage document. The payload is deeply nested
// and sparsely populated; every field here is optional and zero values stand
// in for missing sections.

type zomatoPage struct {
	Location struct {
		CityName  string    `json:"cityName"`
		Latitude  softFloat `json:"latitude"`
		Longitude softFloat `json:"longitude"`
	} `json:"location"`
	PageData struct {
		Order struct {
			MenuList struct {
				Menus []struct {
					Menu zomatoMenu `json:"menu"`
				} `json:"menus"`
			} `json:"menuList"`
		} `json:"order"`
		Sections struct {
			BasicInfo struct {
				Name          string `json:"name"`
				CuisineString string `json:"cuisine_string"`
				Timing        struct {
					CustomisedTimings struct {
						OpeningHours []struct {
							Days   string `json:"days"`
							Timing string `json:"timing"`
						} `json:"opening_hours"`
					} `json:"customised_timings"`
				} `json:"timing"`
			} `json:"SECTION_BASIC_INFO"`
			ResContact struct {
				Address      flexString `json:"address"`
				PhoneDetails struct {
					PhoneStr string `json:"phoneStr"`
				} `json:"phoneDetails"`
			} `json:"SECTION_RES_CONTACT"`
			ResDetails struct {
				CFTDetails struct {
					Cfts []struct {
						Title    string `json:"title"`
						Subtitle string `json:"subtitle"`
					} `json:"cfts"`
				} `json:"CFT_DETAILS"`
				Highlights struct {
					Highlights []struct {
						Text string `json:"text"`
					} `json:"highlights"`
				} `json:"HIGHLIGHTS"`
				Cuisines struct {
					Cuisines []struct {
						Name string `json:"name"`
					} `json:"cuisines"`
				} `json:"CUISINES"`
				TopDishes titleDescription `json:"TOP_DISHES"`
			} `json:"SECTION_RES_DETAILS"`
			ReviewHighlights struct {
				PeopleLiked titleDescription `json:"PEOPLE_LIKED"`
			} `json:"SECTION_REVIEW_HIGHLIGHTS"`
		} `json:"sections"`
	} `json:"page_data"`
	Entities struct {
		Reviews map[string]json.RawMessage `json:"REVIEWS"`
	} `json:"entities"`
}

type zomatoMenu struct {
	Name       string `json:"name"`
	Categories []struct {
		Category struct {
			Name  string            `json:"name"`
			Items []json.RawMessage `json:"items"`
		} `json:"category"`
	} `json:"categories"`
}

type zomatoItem struct {
	Name         string    `json:"name"`
	Desc         string    `json:"desc"`
	DisplayPrice flexFloat `json:"display_price"`
	Price        flexFloat `json:"price"`
	TagSlugs     []string  `json:"tag_slugs"`
}

type zomatoReview struct {
	ReviewText string    `json:"reviewText"`
	RatingV2   flexFloat `json:"ratingV2"`
}

type titleDescription struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// flexFloat decodes a number that sometimes arrives as a numeric string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = 0

		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat(num)

		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	trimmed := strings.TrimSpace(str)
	if trimmed == "" {
		*f = 0

		return nil
	}

	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return err
	}

	*f = flexFloat(parsed)

	return nil
}

// softFloat is a flexFloat that degrades to absent instead of failing the
// enclosing document. Used for optional coordinates, where null is a safe
// default and a garbage value should not sink the whole page.
type softFloat struct {
	value float64
	ok    bool
}

func (s *softFloat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var f flexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		return nil
	}

	s.value = float64(f)
	s.ok = true

	return nil
}

// flexString decodes a field that is sometimes a plain string and sometimes
// the raw scraped address structure. Objects flatten to their "address" field
// when present, otherwise to their compact JSON.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*s = ""

		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = flexString(str)

		return nil
	}

	var obj struct {
		Address string `json:"address"`
	}

	if err := json.Unmarshal(data, &obj); err == nil && obj.Address != "" {
		*s = flexString(obj.Address)

		return nil
	}

	compact := &bytes.Buffer{}
	if err := json.Compact(compact, data); err != nil {
		return err
	}

	*s = flexString(compact.String())

	return nil
}
