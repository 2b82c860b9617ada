// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth resolves the signed-in user for a request.

Sessions live in Supabase; this package never stores them. A request is
authenticated by its access token:

	Authorization: Bearer <access_token>

# Bearer Tokens

	token, err := auth.BearerToken(r)

Returns ErrMissingToken when the header is absent and ErrInvalidToken
when it uses another scheme.

# Protecting Handlers

RequireUser checks the token with a UserVerifier (the Supabase auth client)
and answers 401 when it is missing or rejected:

	mux.HandleFunc("GET /api/auth/me", auth.RequireUser(sb.Auth(), h.Me))

Inside the handler:

	user := auth.UserFromContext(r.Context())
	token := auth.TokenFromContext(r.Context())
*/
package auth
