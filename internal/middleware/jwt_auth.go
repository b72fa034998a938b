package middleware

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"feedback_flow_v1_202608/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ==================== JWT 配置 ====================

// JWTConfig JWT 验签配置
// Domain 配置后按 Auth0 JWKS 验 RS256；否则用 SecretKey 验 HS256（开发/测试）
type JWTConfig struct {
	Domain    string // Auth0 域名，如 feedback-flow.eu.auth0.com
	Audience  string // API audience
	SecretKey string // HS256 密钥（本地开发用）
	JWKSTTL   time.Duration
}

// DefaultJWTConfig 默认配置
func DefaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		SecretKey: "feedback-flow-secret-key-change-in-production",
		JWKSTTL:   time.Hour,
	}
}

// 全局配置
var jwtConfig = DefaultJWTConfig()

// SetJWTConfig 设置 JWT 配置
func SetJWTConfig(cfg *JWTConfig) {
	if cfg.JWKSTTL == 0 {
		cfg.JWKSTTL = time.Hour
	}
	jwtConfig = cfg
}

// GetJWTConfig 获取 JWT 配置
func GetJWTConfig() *JWTConfig {
	return jwtConfig
}

// ==================== Claims 定义 ====================

// PermissionClaims 携带权限声明的 Token
// Auth0 RBAC 把授予的权限放在 permissions 数组里，scope 作为兜底
type PermissionClaims struct {
	Permissions []string `json:"permissions"`
	Scope       string   `json:"scope"`
	jwt.RegisteredClaims
}

// GrantedPermissions 全部授予的权限（permissions ∪ scope）
func (c *PermissionClaims) GrantedPermissions() []string {
	granted := make([]string, 0, len(c.Permissions))
	granted = append(granted, c.Permissions...)
	if c.Scope != "" {
		granted = append(granted, strings.Fields(c.Scope)...)
	}
	return granted
}

// HasPermission 是否持有指定权限
func (c *PermissionClaims) HasPermission(permission string) bool {
	for _, p := range c.GrantedPermissions() {
		if p == permission {
			return true
		}
	}
	return false
}

// ==================== Token 生成（开发/测试） ====================

// GenerateAccessToken 生成 HS256 Token（本地开发和测试用，生产走 Auth0）
func GenerateAccessToken(subject string, permissions []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &PermissionClaims{
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Audience:  jwt.ClaimStrings{jwtConfig.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtConfig.SecretKey))
}

// ==================== Token 解析 ====================

// ParseToken 解析并校验 Token（签名 + 过期）
func ParseToken(tokenString string) (*PermissionClaims, error) {
	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if jwtConfig.Audience != "" {
		opts = append(opts, jwt.WithAudience(jwtConfig.Audience))
	}
	if jwtConfig.Domain != "" {
		opts = append(opts, jwt.WithIssuer("https://"+jwtConfig.Domain+"/"))
	}

	token, err := jwt.ParseWithClaims(tokenString, &PermissionClaims{}, keyFunc, opts...)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*PermissionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// keyFunc 按签名算法选择验签钥匙
func keyFunc(token *jwt.Token) (interface{}, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodHMAC:
		if jwtConfig.Domain != "" {
			// Auth0 模式下不接受对称签名
			return nil, errors.New("unexpected HMAC token")
		}
		return []byte(jwtConfig.SecretKey), nil
	case *jwt.SigningMethodRSA:
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token missing kid header")
		}
		return jwksPublicKey(kid)
	default:
		return nil, fmt.Errorf("unsupported signing method: %v", token.Header["alg"])
	}
}

// ==================== JWKS ====================

// jwk Auth0 JWKS 里的单个钥匙
type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type jwks struct {
	Keys []jwk `json:"keys"`
}

// jwksPublicKey 按 kid 取 RSA 公钥，带 TTL 缓存
func jwksPublicKey(kid string) (*rsa.PublicKey, error) {
	cacheKey := "jwks:" + kid
	if cached, ok := utils.GetCache(cacheKey); ok {
		return cached.(*rsa.PublicKey), nil
	}

	url := "https://" + jwtConfig.Domain + "/.well-known/jwks.json"

	client := resty.New().SetTimeout(10 * time.Second).SetRetryCount(2)
	resp, err := client.R().Get(url)
	if err != nil {
		return nil, fmt.Errorf("JWKS 拉取失败: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("JWKS 拉取失败: 状态码 %d", resp.StatusCode())
	}

	var keySet jwks
	if err := json.Unmarshal(resp.Body(), &keySet); err != nil {
		return nil, fmt.Errorf("JWKS 解析失败: %w", err)
	}

	for _, key := range keySet.Keys {
		if key.Kty != "RSA" {
			continue
		}
		pub, err := parseRSAKey(key)
		if err != nil {
			continue
		}
		utils.SetCache("jwks:"+key.Kid, pub, jwtConfig.JWKSTTL)
	}

	if cached, ok := utils.GetCache(cacheKey); ok {
		return cached.(*rsa.PublicKey), nil
	}
	return nil, fmt.Errorf("JWKS 中找不到 kid: %s", kid)
}

func parseRSAKey(key jwk) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(key.N)
	if err != nil {
		return nil, err
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(key.E)
	if err != nil {
		return nil, err
	}

	e := 0
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: e,
	}, nil
}

// ==================== Gin 中间件 ====================

// Context Keys
const (
	ContextKeySubject     = "subject"
	ContextKeyPermissions = "permissions"
	ContextKeyClaims      = "claims"
)

// RequirePermission 权限校验中间件
// 缺 Bearer / Token 无效 -> 401；Token 有效但没有指定 scope -> 403
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Missing authorization header",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Malformed authorization header",
			})
			c.Abort()
			return
		}

		claims, err := ParseToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid or expired token",
			})
			c.Abort()
			return
		}

		if !claims.HasPermission(permission) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Insufficient permissions",
			})
			c.Abort()
			return
		}

		// 注入调用者信息到 Context，handler 用 subject 解析测试员身份
		c.Set(ContextKeySubject, claims.Subject)
		c.Set(ContextKeyPermissions, claims.GrantedPermissions())
		c.Set(ContextKeyClaims, claims)

		c.Next()
	}
}

// ==================== 辅助函数 ====================

// GetSubject 从 Context 获取调用者外部身份（JWT sub）
func GetSubject(c *gin.Context) string {
	if sub, exists := c.Get(ContextKeySubject); exists {
		return sub.(string)
	}
	return ""
}

// GetPermissions 从 Context 获取授予的权限
func GetPermissions(c *gin.Context) []string {
	if perms, exists := c.Get(ContextKeyPermissions); exists {
		return perms.([]string)
	}
	return nil
}

// GetClaims 从 Context 获取完整 Claims
func GetClaims(c *gin.Context) *PermissionClaims {
	if claims, exists := c.Get(ContextKeyClaims); exists {
		return claims.(*PermissionClaims)
	}
	return nil
}
