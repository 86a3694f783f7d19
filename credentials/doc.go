// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package credentials holds registered users and their credential hashes.

# Registration

Register derives a bcrypt hash of the supplied credential and stores it:

	hash, err := store.Register("alice", "Passw0rd!")

The raw credential is never retained. The returned hash is what the
coordinator records on the ledger, so replaying the ledger restores the
store exactly:

	store.Restore("alice", hash)

# Authentication

Authenticate returns a single boolean:

	ok := store.Authenticate("alice", "Passw0rd!")

Unknown-user and wrong-credential failures are indistinguishable, to
avoid username enumeration. A dummy bcrypt comparison runs on the
unknown-user path so the two cases cost the same.

# Password Policy

ValidatePassword enforces the registration policy and reports the first
failing rule in a fixed order:

 1. minimum length 8
 2. at least one uppercase letter
 3. at least one lowercase letter
 4. at least one digit
 5. at least one symbol from !@#$%^&*(),.?":{}|<>

The policy is checked by the coordinator before Register is called.
*/
package credentials
