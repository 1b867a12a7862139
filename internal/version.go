package internal

// Version is the current sentencemine version
const Version = "0.3.1"
