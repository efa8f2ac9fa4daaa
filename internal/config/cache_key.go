package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// BearerTokenKey returns the Redis key mapping an opaque bearer token to a user ID.
func (r *CacheKeyStruct) BearerTokenKey(token string) string {
	return fmt.Sprintf("auth:token:%s", token)
}

// UserTokensKey returns the Redis key of the set holding all outstanding tokens
// issued to a user. Logout deletes every member of this set.
func (r *CacheKeyStruct) UserTokensKey(userID int64) string {
	return fmt.Sprintf("auth:user:%d:tokens", userID)
}

var CacheKey = NewCacheKeyStruct()
