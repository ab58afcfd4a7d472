// Package captcha verifies human-verification tokens issued by reCAPTCHA,
// hCaptcha or Cloudflare Turnstile.
//
// All three services accept the same siteverify request: a form-encoded POST
// with the server secret, the client token and optionally the client IP.
//
//	v, err := captcha.NewProvider(captcha.Config{
//	    Provider: captcha.ProviderRecaptcha,
//	    Secret:   os.Getenv("CAPTCHA_SECRET"),
//	    MinScore: 0.5,
//	})
//	verdict, err := v.Verify(ctx, token, remoteIP)
//	if err != nil || !verdict.Passed() {
//	    // reject
//	}
//
// Verify returns an error when the provider could not give an answer
// (transport failure, timeout, non-2xx status, malformed body). Callers
// decide how to treat that; the admission pipeline rejects the request.
//
// [Static] is a fixed-answer verifier for local development and tests.
package captcha
