//go:build !mpdebug

package mp

const debugAssertions = false
