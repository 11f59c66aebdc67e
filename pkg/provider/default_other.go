//go:build !darwin && !linux && !windows && !freebsd && !dragonfly && !netbsd && !openbsd && !solaris

package provider

const defaultProviderName = NameNone
