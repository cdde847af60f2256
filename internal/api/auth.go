package api

import (
	"errors"   // Sentinel comparison
	"net/http" // HTTP status codes

	"kodbank/internal/auth"       // Credential verifier and token authority
	"kodbank/internal/domain"     // Importing domain models
	"kodbank/internal/middleware" // Cookie name
	"kodbank/internal/store"      // Repository interfaces

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// RegisterRequest carries the registration form. Field names follow
// the public API: "uid" and "uname", not "id" and "username".
type RegisterRequest struct {
	UID      string `json:"uid"`      // Client-supplied account identifier
	Username string `json:"uname"`    // Unique username
	Password string `json:"password"` // Credential, hashed before storage
	Email    string `json:"email"`    // Required contact email
	Phone    string `json:"phone"`    // Optional phone number
	Role     string `json:"role"`     // Optional role, defaults to Customer
}

// LoginRequest carries submitted credentials.
type LoginRequest struct {
	Username string `json:"username"` // Username to look up
	Password string `json:"password"` // Submitted credential
}

// RegisterHandler creates a new account with the default starting
// balance. Registration never logs the caller in.
func RegisterHandler(accounts store.Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// All four of uid, uname, password and email are required
		if req.UID == "" || req.Username == "" || req.Password == "" || req.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}
		// Default and validate the role label
		if req.Role == "" {
			req.Role = domain.RoleCustomer // Default role
		}
		if !domain.ValidRole(req.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}
		// Hash the password before it touches the database
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
			return
		}
		account := &domain.Account{
			UID:      req.UID,               // Client-supplied identifier
			Username: req.Username,          // Unique username
			Password: string(hash),          // bcrypt hash
			Email:    req.Email,             // Contact email
			Phone:    req.Phone,             // Optional phone
			Role:     req.Role,              // Validated role
			Balance:  domain.DefaultBalance, // Starting balance
		}
		// The store's uniqueness constraints arbitrate concurrent
		// registrations with the same uid or username
		if err := accounts.Create(c.Request.Context(), account); err != nil {
			if errors.Is(err, domain.ErrDuplicateAccount) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Username or UID already exists"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"uid":   req.UID,     // Requested UID
				"error": err.Error(), // Error message
			}).Error("Registration failed") // Log store failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
			return
		}
		// Log successful registration
		logrus.WithFields(logrus.Fields{
			"uid":      account.UID,      // Account UID
			"username": account.Username, // Username
			"role":     account.Role,     // Role
		}).Info("Account registered")
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// LoginHandler authenticates a user, issues a session token and
// transports it in the session cookie
func LoginHandler(verifier *auth.Verifier, authority *auth.TokenAuthority) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// A malformed login attempt gets the same generic answer
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		account, err := verifier.Verify(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCredentials) {
				// Never reveal which of the two fields was wrong
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}
		// Mint and record the session token
		token, _, err := authority.Issue(c.Request.Context(), account)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"uid":   account.UID, // Account UID
				"error": err.Error(), // Error message
			}).Error("Token issue failed") // Log issue failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}
		// Cookie lifetime matches the token TTL; SameSite=None so a
		// cross-site SPA can carry it
		c.SetSameSite(http.SameSiteNoneMode)
		c.SetCookie(middleware.CookieName, token, int(authority.TTL().Seconds()), "/", "", true, true)
		// Log successful login
		logrus.WithFields(logrus.Fields{
			"uid":      account.UID,      // Account UID
			"username": account.Username, // Username
		}).Info("Login successful")
		// Return the role in the response
		c.JSON(http.StatusOK, gin.H{"message": "Login successful", "role": account.Role})
	}
}
