package keys

import (
	"strings"
)

const (
	// PfxAuctionLock is used for prefixing per auction lock redis key
	PfxAuctionLock = "auctionLock"
	// PfxAuctionEvents is used for prefixing auction event pub/sub channels
	PfxAuctionEvents = "auctionEvents"
	// PfxUserEvents is used for prefixing user event pub/sub channels
	PfxUserEvents = "userEvents"
	// PfxUserRef is used for prefixing cached user lookups
	PfxUserRef = "userRef"
)

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// RedisLuaKey is used to join the redis key by componets for redis lua
// If a key created by RedisLuaKey prefix to a set of keys
// then the set of keys will be forced in the same shard for doing lua
func RedisLuaKey(components ...string) string {
	return "{" + CustomKey(":", components...) + "}"
}

// AuctionLock is the redis key guarding one auction
func AuctionLock(auctionId string) string {
	return RedisLuaKey(PfxAuctionLock, auctionId)
}

// AuctionChannel is the pub/sub channel of one auction
func AuctionChannel(auctionId string) string {
	return RedisKey(PfxAuctionEvents, auctionId)
}

// UserChannel is the pub/sub channel of one user
func UserChannel(userId string) string {
	return RedisKey(PfxUserEvents, userId)
}

// GetPrefix returns the first component of a key, used as metrics tag
func GetPrefix(key string) string {
	key = strings.TrimPrefix(key, "{")
	if i := strings.IndexAny(key, ":}"); i >= 0 {
		return key[:i]
	}
	return key
}
