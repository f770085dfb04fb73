/*
Package portalsdk is a client for the partner portal API.

# SDKClient vs Session

SDKClient covers the public endpoints: health, invitation setup,
self-registration, bootstrap and the affiliate tracking hooks. Login
returns a Session, which carries the bearer token for everything else.

	client := portalsdk.NewSDKClient("https://portal.example.com")

	// Redeem an emailed setup link
	v, err := client.ValidateInvitation(ctx, token)
	_, err = client.CompleteSetup(ctx, portalsdk.CompleteSetupRequest{Token: token, Password: pw})

	// Sign in as an admin or a member
	session, err := client.Login(ctx, portalsdk.LoginRequest{Kind: "admin", Email: email, Password: pw})

Sessions are not refreshed. Once ExpiresAt passes every call returns
ErrSessionExpired and the caller signs in again. Logout revokes every
session of the account, not only the current one.

# Scopes

Admin sessions carry admin:read and admin:write. Member sessions carry
portal:read and portal:write. The SDK checks the scope a call needs before
sending it; set CheckScopes to false to leave the decision to the server.

# Errors

Non-2xx responses come back as *APIError with the server's error code:

	_, err := client.Login(ctx, req)
	switch {
	case portalsdk.IsCode(err, portalsdk.ErrorCodeMFARequired):
		req.OTP = promptForCode()
		session, err = client.Login(ctx, req)
	case portalsdk.IsCode(err, portalsdk.ErrorCodeApprovalPending):
		fmt.Println("your registration is still waiting for review")
	}

# Tracking

TrackClick is meant for the landing page. The server sets a visitor cookie,
so give the client a cookie jar if it should keep the same visitor across
clicks. RecordConversion is server-to-server and needs the shared
conversion key.

# Thread Safety

A Session may be shared between goroutines.
*/
package portalsdk
