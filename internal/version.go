package internal

// Version is the ankivoice release version.
const Version = "0.1.0"
