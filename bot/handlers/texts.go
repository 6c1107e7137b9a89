package handlers

// Reply texts. Kept in one place so dialogue flows read top to bottom
// in commands.go and conversation.go.
const (
	msgWelcome = "Welcome! Use /signup to create an account or /login to sign in."

	msgAskUsername      = "Please choose a username:"
	msgAskPassword      = "Please choose a password:"
	msgAskLoginUsername = "Please enter your username:"
	msgAskLoginPassword = "Please enter your password:"

	msgSignupOK      = "Signup successful! You are now logged in."
	msgUsernameTaken = "That username is already taken. Use /signup to try again."
	msgLoginOK       = "Login successful!"
	msgBadCredential = "Invalid credentials. Use /login to try again."

	msgNotLoggedIn = "Please log in first using /login."
	msgServerError = "Something went wrong. Please try again later."
	msgSendFailed  = "Could not deliver the media. Please try again later."
)
