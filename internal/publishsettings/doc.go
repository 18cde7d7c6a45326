// Package publishsettings reads the MSDeploy profile of a site from a .PublishSettings
// document and derives the management endpoint and authentication scheme from it.
package publishsettings
