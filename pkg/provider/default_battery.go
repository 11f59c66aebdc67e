//go:build windows || freebsd || dragonfly || netbsd || openbsd || solaris

package provider

const defaultProviderName = NameBattery
