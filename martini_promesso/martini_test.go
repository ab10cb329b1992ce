package martini_promesso_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/augustoroman/promesso"
	"github.com/augustoroman/promesso/martini_promesso"
	"github.com/go-martini/martini"
)

func TestMartiniParamsAvailability(t *testing.T) {
	// An example function using the path params.
	greet := func(req *promesso.Request) (any, error) {
		return fmt.Sprintf("%s %s", req.Param("greeting"), req.Param("name")), nil
	}

	// An example server using the martini_promesso adapter.
	m := martini.Classic()
	m.Get("/say/:greeting/:name", martini_promesso.Handle(greet))

	// Call the server.
	rw := httptest.NewRecorder()
	r, _ := http.NewRequest("GET", "/say/Hi/Bob", nil)
	m.ServeHTTP(rw, r)

	// Validate the output.
	if rw.Body.String() != "Hi Bob" {
		t.Errorf("Wrong response: %q", rw.Body.String())
	}
}
