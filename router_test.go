package promesso

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/augustoroman/promesso/chain"
	"github.com/stretchr/testify/assert"
)

func TestRouter(t *testing.T) {
	logs := &logRecorder{}
	r := TheUsual(WithLoggers(logs.Loggers()))

	type userKey struct{}
	users := map[string]string{"1": "bob", "2": "alice"}

	loadUser := func(req *Request) (any, error) {
		u := users[req.Param("userID")]
		if u == "" {
			return nil, ErrNotFound.WithHTTPResponse("No such user")
		}
		req.Set(userKey{}, u)
		return nil, nil
	}
	userOf := func(req *Request) string {
		u, _ := req.Get(userKey{})
		return u.(string)
	}
	newUserFromRequest := func(req *Request) (any, error) {
		uid, name := req.FormValue("uid"), req.FormValue("name")
		if uid == "" {
			return nil, errors.New("missing user id")
		} else if name == "" {
			return nil, errors.New("missing user info")
		}
		users[uid] = name
		return fmt.Sprintf("Made user %#q = %#q", uid, name), nil
	}

	r.Get("/user/:userID", loadUser, func(req *Request) (any, error) {
		return fmt.Sprintf("Hi user %#q", userOf(req)), nil
	})
	r.Post("/user/", newUserFromRequest)
	r.Any("/user/:userID/*cmd", loadUser, func(req *Request) (any, error) {
		return fmt.Sprintf("Doing %#q (%s) to user %#q", req.Method, req.Param("cmd"), userOf(req)), nil
	})

	w := serve(r, "GET", "/user/1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hi user `bob`", w.Body.String())

	w = serve(r, "GET", "/user/2")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hi user `alice`", w.Body.String())

	w = serve(r, "GET", "/user/3")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"code":"NOT_FOUND","message":"No such user"}`, w.Body.String())

	w = serve(r, "POST", "/user/?uid=3&name=sid")
	assert.Equal(t, http.StatusOK, w.Code, "Response: %s", w.Body.String())

	w = serve(r, "POST", "/user/?uid=4")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, logs.Logs(), "missing user info")

	w = serve(r, "GET", "/user/3")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hi user `sid`", w.Body.String())

	w = serve(r, "EXPLODE", "/user/3/boom")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Doing `EXPLODE` (/boom) to user `sid`", w.Body.String())

	w = serve(r, "GET", "/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// TheUsual logs every request.
	assert.Contains(t, logs.Logs(), "request method GET uri /user/1 status 200")
}

func TestRouterAnyIsSupersededByMethods(t *testing.T) {
	r := BuildYourOwn()
	r.Any("/thing", say("any"))
	r.Get("/thing", say("get"))
	r.Put("/thing", say("put"))

	assert.Equal(t, "get", serve(r, "GET", "/thing").Body.String())
	assert.Equal(t, "put", serve(r, "PUT", "/thing").Body.String())
	assert.Equal(t, "any", serve(r, "DELETE", "/thing").Body.String())
	assert.Equal(t, "any", serve(r, "OPTIONS", "/thing").Body.String())
}

func TestSubRouterAndUse(t *testing.T) {
	r := BuildYourOwn()
	mark := func(v string) chain.Middleware {
		return func(w http.ResponseWriter, r *http.Request, next chain.Next) {
			w.Header().Add("X-Mark", v)
			next(nil)
		}
	}
	r.Use(mark("root"))
	api := r.SubRouter("/api/")
	api.Use(mark("api"))
	r.Use(mark("late"))

	users := api.SubRouter("users")
	users.Get("/:id", func(req *Request) (any, error) { return "user " + req.Param("id"), nil })
	r.Get("/home", say("home"))

	w := serve(r, "GET", "/api/users/7")
	assert.Equal(t, "user 7", w.Body.String())
	assert.Equal(t, []string{"root", "api"}, w.Header().Values("X-Mark"))

	w = serve(r, "GET", "/home")
	assert.Equal(t, "home", w.Body.String())
	assert.Equal(t, []string{"root", "late"}, w.Header().Values("X-Mark"))
}

func TestRouterPanicsOnBadRoutes(t *testing.T) {
	r := BuildYourOwn()
	assert.Panics(t, func() { r.Get("/bad", 42) })

	schema := SchemaFunc(func(*Request) error { return nil })
	r.Use(Validate(schema, say("a")))
	assert.Panics(t, func() { r.Get("/twice", Validate(schema, say("b"))) })
}

func TestEndpointWithNativeMux(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/hello", Handle(say("hello")))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/hello", nil))
	assert.Equal(t, "hello", w.Body.String())
}
