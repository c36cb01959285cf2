package backend

// .mygit/config config keys
const (
	CfgCore              = "core"
	CfgCoreFormatVersion = "repositoryformatversion"
	CfgCoreFileMode      = "filemode"

	CfgUser      = "user"
	CfgUserName  = "name"
	CfgUserEmail = "email"

	CfgCheckout         = "checkout"
	CfgCheckoutPreserve = "preserve"
)

// Default values used when the config doesn't set any
const (
	DefaultUserName  = "User"
	DefaultUserEmail = "user@example.com"
)
