// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware holds the request plumbing shared by every Fitnest route.

The server wraps the mux once, outermost first:

	handler := middleware.CORS(middleware.WithRequestID(metrics.InstrumentHandler(mux)))

Individual routes add WithLogging, and the meal planner adds a RateLimiter:

	rl := middleware.NewRateLimiter(cfg.MealPlanRate, cfg.TrustProxy)
	mux.HandleFunc("POST /api/meal-planner", middleware.WithLogging(rl.Limit(h.Generate)))

# Request IDs

WithRequestID keeps a client-sent X-Request-ID (up to 128 bytes) or mints a
UUID, echoes it on the response and stores it in the context. WithLogging
tags its "request started" and "request completed" lines with it.

# CORS

Any origin is reflected with credentials allowed. Browsers may send
Content-Type, Authorization and X-Request-ID, and may read X-Request-ID back.
Preflight OPTIONS requests are answered directly.

# Bodies and responses

JSONResponse and ErrorResponse write JSON; MethodNotAllowed is the 405 used
by catch-all routes. ParseJSONBody decodes into a struct. ReadBody returns
raw bytes, or ErrEmptyBody for a blank body. Both stop at MaxBodyBytes.

# Rate limiting

RateLimiter keeps a token bucket per client IP. By default the key is
PeerIP, the connection's remote address. With trustProxy it is GetClientIP,
which prefers the first X-Forwarded-For hop, then X-Real-IP, then the peer
address. Rejected requests get 429 with Retry-After. Buckets idle for ten
minutes are swept.
*/
package middleware
