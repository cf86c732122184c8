package middleware

import (
    "strconv"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"
)

// HeaderSessionID carries the anonymous shopper id of a guest.
const HeaderSessionID = "X-Session-ID"

// Shopper resolves which workspace a request belongs to.  Authenticated
// users get "user:<id>".  Guests get "guest:<uuid>" from X-Session-ID; a
// missing or malformed id is replaced by a fresh one echoed back in the
// response header, which the client should send from then on.
// Run it after JWTAuth or OptionalAuth.
func Shopper() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if id, ok := UserID(c); ok {
                c.Set(CtxShopper, UserKey(id))
                return next(c)
            }
            sid := GuestID(c)
            c.Response().Header().Set(HeaderSessionID, sid)
            c.Set(CtxGuestID, sid)
            c.Set(CtxShopper, GuestKey(sid))
            return next(c)
        }
    }
}

// GuestID returns the request's valid X-Session-ID, or a new uuid.
func GuestID(c echo.Context) string {
    if u, err := uuid.Parse(c.Request().Header.Get(HeaderSessionID)); err == nil {
        return u.String()
    }
    return uuid.NewString()
}

// UserKey and GuestKey build workspace keys.
func UserKey(id uint64) string   { return "user:" + strconv.FormatUint(id, 10) }
func GuestKey(sid string) string { return "guest:" + sid }

// ShopperKey returns the key set by Shopper, or "" outside it.
func ShopperKey(c echo.Context) string {
    s, _ := c.Get(CtxShopper).(string)
    return s
}

// rateIdentity is the caller identity used by the rate limiter.
func rateIdentity(c echo.Context) string {
    if id, ok := UserID(c); ok {
        return UserKey(id)
    }
    if u, err := uuid.Parse(c.Request().Header.Get(HeaderSessionID)); err == nil {
        return GuestKey(u.String())
    }
    return "anon"
}
