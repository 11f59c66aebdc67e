package provider

const defaultProviderName = NameIOReg
