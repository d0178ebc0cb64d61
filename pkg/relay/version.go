package relay

// Version is the module version reported by the relay CLI.
const Version = "0.3.0"
