package utils

import "sync"

// KeyedMutex serializes work per string key. The cart and order
// engines share one instance keyed by user id so a checkout can never
// interleave with a cart mutation for the same user; the auth service
// uses another keyed by mobile number for OTP verification.
type KeyedMutex struct {
	locks sync.Map // key -> *sync.Mutex
}

// Lock acquires the mutex for key and returns its unlock function.
//
//	defer locks.Lock(userID)()
func (km *KeyedMutex) Lock(key string) func() {
	v, _ := km.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
