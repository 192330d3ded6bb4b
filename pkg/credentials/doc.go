// Package credentials loads the static credential document that gates the
// portal and verifies login attempts against it.
//
// The document is YAML:
//
//	credentials:
//	  usernames:
//	    jsmith:
//	      name: John Smith
//	      password: "$2b$12$..."   # bcrypt hash
//	cookie:
//	  name: propdocs_auth
//	  key: some-signing-key
//	  expiry_days: 30
//
// LoadFile or Parse produce an immutable Store. It is read once at startup and
// shared by all requests without locking.
package credentials
