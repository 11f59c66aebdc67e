package provider

const defaultProviderName = NameSysfs
