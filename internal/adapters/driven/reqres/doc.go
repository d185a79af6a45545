// Package reqres provides the remote directory client for reqres.in style
// user-directory REST services.
//
// Endpoints used:
//
//	POST   /login          {email, password}  -> {token}
//	GET    /users?page=N                      -> {page, total_pages, data: [...]}
//	PUT    /users/{id}     {first_name, ...}  -> echoed fields + updatedAt
//	DELETE /users/{id}                        -> 204
//
// Every non-2xx response becomes an *APIError wrapped in a domain.OpError of
// the operation's kind. The client does not retry.
package reqres
