package vndb

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avndb-cli/avndb/network"
	. "github.com/smartystreets/goconvey/convey"
)

// newTestClient returns a client with its session open against the fixture server.
func newTestClient(endpoint string) *Client {
	return &Client{endpoint: endpoint, session: network.NewClient()}
}

// fixtureMux emulates the subset of the Kana API the client exercises.
func fixtureMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /stats", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{
			"chars": 100, "producers": 20, "releases": 300,
			"staff": 40, "tags": 50, "traits": 60, "vn": 70,
		})
	})

	mux.HandleFunc("GET /schema", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"api_fields":{"vn":{}},"enums":{}}`))
	})

	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		resp := map[string]any{q: nil}
		if q == "yorhel" {
			record := map[string]any{"id": "u2", "username": "yorhel"}
			if strings.Contains(r.URL.Query().Get("fields"), "lengthvotes") {
				record["lengthvotes"] = 31
				record["lengthvotes_sum"] = 54054
			}
			resp[q] = record
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	mux.HandleFunc("GET /authinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "token secret-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":"u2","username":"yorhel","permissions":["listread"]}`))
	})

	mux.HandleFunc("POST /vn", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Filters any    `json:"filters"`
			Fields  string `json:"fields"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		results := []VN{
			{ID: "v97", Title: "Saya no Uta", Released: "2003-12-26", Length: 2, Rating: 81.2, VoteCount: 14000, DevStatus: DevStatusFinished},
			{ID: "v21668", Title: "Saya no Uta 2", Released: "TBA", Length: 0, Rating: 0, VoteCount: 0, DevStatus: DevStatusCancelled},
		}

		// The cancelled entry carries no tags: any tag clause filters it out.
		filters, _ := json.Marshal(payload.Filters)
		if strings.Contains(string(filters), `"tag"`) {
			results = results[:1]
		}

		_ = json.NewEncoder(w).Encode(VNPage{Results: results, More: false, Count: len(results)})
	})

	return mux
}

func TestClientLifecycle(t *testing.T) {
	Convey("Client session lifecycle", t, func() {
		Convey("A zero-value client reports ErrClientClosed", func() {
			var c Client
			_, err := c.GetStats()
			So(errors.Is(err, ErrClientClosed), ShouldBeTrue)
		})

		Convey("Operations after Close report ErrClientClosed", func() {
			srv := httptest.NewServer(fixtureMux())
			defer srv.Close()

			c := newTestClient(srv.URL)
			c.Close()

			_, err := c.SearchVN("saya no uta", nil)
			So(errors.Is(err, ErrClientClosed), ShouldBeTrue)
		})

		Convey("Close is idempotent", func() {
			c := newTestClient("http://unused")
			c.Close()
			So(c.Close, ShouldNotPanic)
		})
	})
}

func TestGetStats(t *testing.T) {
	Convey("GetStats", t, func() {
		srv := httptest.NewServer(fixtureMux())
		defer srv.Close()

		c := newTestClient(srv.URL)
		defer c.Close()

		Convey("Decodes the statistics record", func() {
			stats, err := c.GetStats()
			So(err, ShouldBeNil)
			So(stats.VN, ShouldEqual, 70)
			So(stats.Tags, ShouldEqual, 50)
		})
	})

	Convey("GetStats on a failing server", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := newTestClient(srv.URL)
		defer c.Close()

		Convey("Reports the status code", func() {
			_, err := c.GetStats()
			var statusError *StatusError
			So(errors.As(err, &statusError), ShouldBeTrue)
			So(statusError.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}

func TestGetSchema(t *testing.T) {
	Convey("GetSchema", t, func() {
		srv := httptest.NewServer(fixtureMux())
		defer srv.Close()

		c := newTestClient(srv.URL)
		defer c.Close()

		Convey("Passes the JSON document through untyped", func() {
			schema, err := c.GetSchema()
			So(err, ShouldBeNil)
			So(schema, ShouldContainKey, "api_fields")
		})
	})
}

func TestGetUser(t *testing.T) {
	Convey("GetUser", t, func() {
		srv := httptest.NewServer(fixtureMux())
		defer srv.Close()

		c := newTestClient(srv.URL)
		defer c.Close()

		Convey("Resolves a known user with extended fields", func() {
			found, err := c.GetUser("yorhel")
			So(err, ShouldBeNil)
			So(found.IsPresent(), ShouldBeTrue)

			user := found.MustGet()
			So(user.ID, ShouldEqual, "u2")
			So(user.LengthVotes, ShouldEqual, 31)
		})

		Convey("Default-only lookups omit the extended fields", func() {
			found, err := c.GetUserDefaultOnly("yorhel")
			So(err, ShouldBeNil)
			So(found.MustGet().LengthVotes, ShouldEqual, 0)
		})

		Convey("An unknown user is None, not an error", func() {
			found, err := c.GetUser("no-such-user")
			So(err, ShouldBeNil)
			So(found.IsAbsent(), ShouldBeTrue)
		})
	})

	Convey("GetUser against a failing server", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := newTestClient(srv.URL)
		defer c.Close()

		Convey("A server failure reads as absence, not an error", func() {
			found, err := c.GetUser("yorhel")
			So(err, ShouldBeNil)
			So(found.IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestGetAuthInfo(t *testing.T) {
	Convey("GetAuthInfo", t, func() {
		srv := httptest.NewServer(fixtureMux())
		defer srv.Close()

		c := newTestClient(srv.URL)
		defer c.Close()

		Convey("Resolves a valid token", func() {
			found, err := c.GetAuthInfo("secret-token")
			So(err, ShouldBeNil)
			So(found.IsPresent(), ShouldBeTrue)
			So(found.MustGet().Username, ShouldEqual, "yorhel")
			So(found.MustGet().Permissions, ShouldResemble, []string{"listread"})
		})

		Convey("A rejected token is None, not an error", func() {
			found, err := c.GetAuthInfo("wrong")
			So(err, ShouldBeNil)
			So(found.IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestSearchVN(t *testing.T) {
	Convey("SearchVN", t, func() {
		srv := httptest.NewServer(fixtureMux())
		defer srv.Close()

		c := newTestClient(srv.URL)
		defer c.Close()

		Convey("An unfiltered search returns every match", func() {
			vns, err := c.SearchVN("saya no uta", nil)
			So(err, ShouldBeNil)
			So(len(vns), ShouldEqual, 2)

			statuses := map[int]bool{}
			for _, vn := range vns {
				statuses[vn.DevStatus] = true
			}
			So(statuses[DevStatusFinished], ShouldBeTrue)
			So(statuses[DevStatusCancelled], ShouldBeTrue)
		})

		Convey("A tag filter narrows to a strict subset", func() {
			unfiltered, err := c.SearchVN("saya no uta", nil)
			So(err, ShouldBeNil)

			filtered, err := c.SearchVN("saya no uta", &VNFilter{Tag: []string{"g7"}})
			So(err, ShouldBeNil)

			So(len(filtered), ShouldBeLessThan, len(unfiltered))
			for _, vn := range filtered {
				So(vn.DevStatus, ShouldEqual, DevStatusFinished)
			}
		})

		Convey("SearchVNPage carries pagination metadata", func() {
			page, err := c.SearchVNPage("saya no uta", nil, SearchParams{Results: 10, Page: 1})
			So(err, ShouldBeNil)
			So(page.Count, ShouldEqual, 2)
			So(page.More, ShouldBeFalse)
		})
	})

	Convey("SearchVN against a rate-limited server", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		c := newTestClient(srv.URL)
		defer c.Close()

		Convey("Reports ErrRateLimited, distinct from other failures", func() {
			_, err := c.SearchVN("saya no uta", nil)
			So(errors.Is(err, ErrRateLimited), ShouldBeTrue)

			var statusError *StatusError
			So(errors.As(err, &statusError), ShouldBeFalse)
		})
	})

	Convey("SearchVN with no matches", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"results":[],"more":false,"count":0}`))
		}))
		defer srv.Close()

		c := newTestClient(srv.URL)
		defer c.Close()

		Convey("Returns nil without error", func() {
			vns, err := c.SearchVN("zzzzzz", nil)
			So(err, ShouldBeNil)
			So(vns, ShouldBeNil)
		})
	})
}

func TestSearchParamsPassthrough(t *testing.T) {
	Convey("SearchVNPage parameter passthrough", t, func() {
		var payload map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload = nil
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}

			page := VNPage{Results: []VN{{ID: "v97", Title: "Saya no Uta"}}}
			if payload["compact_filters"] == true {
				page.CompactFilters = "03gen"
			}
			if payload["normalized_filters"] == true {
				page.NormalizedFilters = []any{"search", "=", "saya"}
			}
			_ = json.NewEncoder(w).Encode(page)
		}))
		defer srv.Close()

		c := newTestClient(srv.URL)
		defer c.Close()

		Convey("Forwards user and the filter echo flags verbatim", func() {
			page, err := c.SearchVNPage("saya", nil, SearchParams{
				User:              "u2",
				CompactFilters:    true,
				NormalizedFilters: true,
			})
			So(err, ShouldBeNil)

			So(payload["user"], ShouldEqual, "u2")
			So(payload["compact_filters"], ShouldEqual, true)
			So(payload["normalized_filters"], ShouldEqual, true)

			So(page.CompactFilters, ShouldEqual, "03gen")
			So(page.NormalizedFilters, ShouldNotBeNil)
		})

		Convey("Zero-value params leave the knobs unset", func() {
			_, err := c.SearchVNPage("saya", nil, SearchParams{})
			So(err, ShouldBeNil)

			So(payload, ShouldNotContainKey, "user")
			So(payload, ShouldNotContainKey, "compact_filters")
			So(payload, ShouldNotContainKey, "normalized_filters")
			So(payload, ShouldNotContainKey, "sort")
		})
	})
}
