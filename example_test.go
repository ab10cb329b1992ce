package promesso_test

import (
	"io/fs"
	"net/http"

	"github.com/augustoroman/promesso"
)

type UserID string

type User struct {
	ID   UserID `json:"id"`
	Name string `json:"name"`
}

type UserDB interface {
	Get(UserID) (*User, error)
	New(*User) (UserID, error)
	Del(UserID) error
	List() ([]*User, error)
}

type handlers struct{ db UserDB }

type userIDKey struct{}

func ExampleRouter() {
	h := handlers{} // db: NewUserDB(...)

	root := promesso.TheUsual()

	api := root.SubRouter("/api")
	api.Use(promesso.Gzip)

	apiUsers := api.SubRouter("/users")
	apiUsers.Get("/:uid", UserIDFromParam, h.GetUser)
	apiUsers.Delete("/:uid", UserIDFromParam, h.DeleteUser)
	apiUsers.Get("/", h.ListUsers)
	apiUsers.Post("/", h.CreateUser)

	var staticFS fs.FS
	root.Get("/home/", GetLoggedInUser, h.Home)
	root.Get("/static/*path", http.FileServer(http.FS(staticFS)))

	// Output:
}

func GetLoggedInUser(req *promesso.Request) (any, error) {
	token := req.Header.Get("user-token")
	uid := UserID(token) // decode the token to get the user info
	if uid == "" {
		return nil, promesso.ErrUnauthorized.WithHTTPResponse("invalid user token")
	}
	req.Set(userIDKey{}, uid)
	return nil, nil
}

func UserIDFromParam(req *promesso.Request) (any, error) {
	uid := UserID(req.Param("uid"))
	if uid == "" {
		return nil, promesso.ErrBadRequest.WithHTTPResponse("Missing UID param")
	}
	req.Set(userIDKey{}, uid)
	return nil, nil
}

func userID(req *promesso.Request) UserID {
	uid, _ := req.Get(userIDKey{})
	return uid.(UserID)
}

func (h handlers) Home(req *promesso.Request) (any, error) {
	u, err := h.db.Get(userID(req))
	if err != nil {
		return nil, err
	}
	return "Hello " + u.Name, nil
}

func (h handlers) GetUser(req *promesso.Request) (any, error) { return h.db.Get(userID(req)) }
func (h handlers) ListUsers(req *promesso.Request) (any, error) { return h.db.List() }

func (h handlers) DeleteUser(req *promesso.Request) (any, error) {
	return nil, h.db.Del(userID(req))
}

func (h handlers) CreateUser(req *promesso.Request) (any, error) {
	var u User
	if err := req.Bind(&u); err != nil {
		return nil, err
	}
	return h.db.New(&u)
}
