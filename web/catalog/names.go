package catalog

// Well-known header field names, grouped the way MDN groups them.
//
// Reference: https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers

// Authentication.
const (
	WWWAuthenticate    = "WWW-Authenticate"
	Authorization      = "Authorization"
	ProxyAuthenticate  = "Proxy-Authenticate"
	ProxyAuthorization = "Proxy-Authorization"
)

// Caching.
const (
	Age           = "Age"
	CacheControl  = "Cache-Control"
	ClearSiteData = "Clear-Site-Data"
	Expires       = "Expires"
	Pragma        = "Pragma"
	Warning       = "Warning"
)

// Conditionals.
const (
	LastModified      = "Last-Modified"
	ETag              = "ETag"
	IfMatch           = "If-Match"
	IfNoneMatch       = "If-None-Match"
	IfModifiedSince   = "If-Modified-Since"
	IfUnmodifiedSince = "If-Unmodified-Since"
	Vary              = "Vary"
)

// Connection management.
const (
	Connection = "Connection"
	KeepAlive  = "Keep-Alive"
)

// Content negotiation.
const (
	Accept         = "Accept"
	AcceptCharset  = "Accept-Charset"
	AcceptEncoding = "Accept-Encoding"
	AcceptLanguage = "Accept-Language"
)

// Cookies.
const (
	Cookie    = "Cookie"
	SetCookie = "Set-Cookie"
)

// CORS.
const (
	AccessControlAllowOrigin      = "Access-Control-Allow-Origin"
	AccessControlAllowCredentials = "Access-Control-Allow-Credentials"
	AccessControlAllowHeaders     = "Access-Control-Allow-Headers"
	AccessControlAllowMethods     = "Access-Control-Allow-Methods"
	AccessControlExposeHeaders    = "Access-Control-Expose-Headers"
	AccessControlMaxAge           = "Access-Control-Max-Age"
	AccessControlRequestHeaders   = "Access-Control-Request-Headers"
	AccessControlRequestMethod    = "Access-Control-Request-Method"
	Origin                        = "Origin"
	TimingAllowOrigin             = "Timing-Allow-Origin"
)

// Message body information.
const (
	ContentDisposition = "Content-Disposition"
	ContentLength      = "Content-Length"
	ContentType        = "Content-Type"
	ContentEncoding    = "Content-Encoding"
	ContentLanguage    = "Content-Language"
	ContentLocation    = "Content-Location"
)

// Proxies.
const (
	Forwarded     = "Forwarded"
	XForwardedFor = "X-Forwarded-For"
	Via           = "Via"
)

// Range requests.
const (
	AcceptRanges = "Accept-Ranges"
	Range        = "Range"
	IfRange      = "If-Range"
	ContentRange = "Content-Range"
)

// Redirects.
const (
	Location = "Location"
	Refresh  = "Refresh"
)

// Request context.
const (
	From           = "From"
	Host           = "Host"
	Referer        = "Referer"
	ReferrerPolicy = "Referrer-Policy"
	UserAgent      = "User-Agent"
	Expect         = "Expect"
	MaxForwards    = "Max-Forwards"
)

// Response context.
const (
	Allow  = "Allow"
	Server = "Server"
)

// Security.
const (
	ContentSecurityPolicy   = "Content-Security-Policy"
	CrossOriginOpenerPolicy = "Cross-Origin-Opener-Policy"
	StrictTransportSecurity = "Strict-Transport-Security"
	XContentTypeOptions     = "X-Content-Type-Options"
	XFrameOptions           = "X-Frame-Options"
	XXSSProtection          = "X-XSS-Protection"
)

// Transfer coding.
const (
	TransferEncoding = "Transfer-Encoding"
	TE               = "TE"
	Trailer          = "Trailer"
	Upgrade          = "Upgrade"
)

// Rate limiting and retries.
const (
	RetryAfter          = "Retry-After"
	XRetryAfter         = "X-Retry-After"
	RateLimitLimit      = "RateLimit-Limit"
	RateLimitRemaining  = "RateLimit-Remaining"
	RateLimitReset      = "RateLimit-Reset"
	XRateLimitLimit     = "X-RateLimit-Limit"
	XRateLimitRemaining = "X-RateLimit-Remaining"
	XRateLimitReset     = "X-RateLimit-Reset"
)

// Common extension fields.
const (
	Date           = "Date"
	Link           = "Link"
	XRequestID     = "X-Request-ID"
	XCorrelationID = "X-Correlation-ID"
	XAPIKey        = "X-API-Key"
	XPoweredBy     = "X-Powered-By"
	DNT            = "DNT"
)

var definitions = []Definition{
	{1, WWWAuthenticate, "Defines the authentication method to access a resource.", CategoryAuthentication},
	{2, Authorization, "Credentials to authenticate a user agent with a server.", CategoryAuthentication},
	{3, ProxyAuthenticate, "Defines the authentication method to access a resource behind a proxy.", CategoryAuthentication},
	{4, ProxyAuthorization, "Credentials to authenticate a user agent with a proxy server.", CategoryAuthentication},

	{10, Age, "Time in seconds the object has been in a proxy cache.", CategoryCaching},
	{11, CacheControl, "Directives for caching mechanisms in requests and responses.", CategoryCaching},
	{12, ClearSiteData, "Clears browsing data associated with the requesting website.", CategoryCaching},
	{13, Expires, "Date/time after which the response is considered stale.", CategoryCaching},
	{14, Pragma, "Implementation-specific header superseded by Cache-Control.", CategoryCaching},
	{15, Warning, "General warning information about possible problems.", CategoryCaching},

	{20, LastModified, "Last modification date of the resource.", CategoryConditionals},
	{21, ETag, "Unique string identifying the version of the resource.", CategoryConditionals},
	{22, IfMatch, "Makes the request conditional on matching entity tags.", CategoryConditionals},
	{23, IfNoneMatch, "Makes the request conditional on no entity tag matching.", CategoryConditionals},
	{24, IfModifiedSince, "Transfers the resource only if modified after the given date.", CategoryConditionals},
	{25, IfUnmodifiedSince, "Transfers the resource only if not modified after the given date.", CategoryConditionals},
	{26, Vary, "Request headers to consider when deciding cached-response reuse.", CategoryConditionals},

	{30, Connection, "Controls whether the network connection stays open.", CategoryConnection},
	{31, KeepAlive, "Controls how long a persistent connection should stay open.", CategoryConnection},

	{40, Accept, "Media types the sender is able to understand.", CategoryContentNegotiation},
	{41, AcceptCharset, "Character sets the client is able to understand.", CategoryContentNegotiation},
	{42, AcceptEncoding, "Content encodings the sender can understand.", CategoryContentNegotiation},
	{43, AcceptLanguage, "Natural languages the client prefers.", CategoryContentNegotiation},

	{50, Cookie, "Stored HTTP cookies previously sent with Set-Cookie.", CategoryCookies},
	{51, SetCookie, "Sends a cookie from the server to the user agent.", CategoryCookies},

	{60, AccessControlAllowOrigin, "Origins allowed to read the response.", CategoryCORS},
	{61, AccessControlAllowCredentials, "Whether the response may be exposed with credentials.", CategoryCORS},
	{62, AccessControlAllowHeaders, "Headers permitted in the actual request.", CategoryCORS},
	{63, AccessControlAllowMethods, "Methods permitted when accessing the resource.", CategoryCORS},
	{64, AccessControlExposeHeaders, "Headers exposed as part of the response.", CategoryCORS},
	{65, AccessControlMaxAge, "How long preflight results can be cached.", CategoryCORS},
	{66, AccessControlRequestHeaders, "Headers the actual request will carry, sent on preflight.", CategoryCORS},
	{67, AccessControlRequestMethod, "Method the actual request will use, sent on preflight.", CategoryCORS},
	{68, Origin, "Origin that caused the request.", CategoryCORS},
	{69, TimingAllowOrigin, "Origins allowed to see resource-timing values.", CategoryCORS},

	{80, ContentDisposition, "Whether content is displayed inline or as an attachment.", CategoryMessageBody},
	{81, ContentLength, "Size of the message body in bytes.", CategoryMessageBody},
	{82, ContentType, "Media type of the resource.", CategoryMessageBody},
	{83, ContentEncoding, "Compression applied to the message body.", CategoryMessageBody},
	{84, ContentLanguage, "Natural language intended for the audience.", CategoryMessageBody},
	{85, ContentLocation, "Alternate location for the returned data.", CategoryMessageBody},

	{90, Forwarded, "Client-facing information lost by proxying.", CategoryProxies},
	{91, XForwardedFor, "Originating client addresses through proxies.", CategoryProxies},
	{92, Via, "Intermediate proxies the message passed through.", CategoryProxies},

	{100, AcceptRanges, "Whether the server supports range requests.", CategoryRangeRequests},
	{101, Range, "Part of a document the server should return.", CategoryRangeRequests},
	{102, IfRange, "Range request honored only if the condition holds.", CategoryRangeRequests},
	{103, ContentRange, "Where in the full message a partial body belongs.", CategoryRangeRequests},

	{110, Location, "URL to redirect the page to.", CategoryRedirects},
	{111, Refresh, "Instructs the browser to reload or redirect the page.", CategoryRedirects},

	{120, From, "Email address of the human controlling the user agent.", CategoryRequestContext},
	{121, Host, "Domain name and port of the server being addressed.", CategoryRequestContext},
	{122, Referer, "Address of the page making the request.", CategoryRequestContext},
	{123, ReferrerPolicy, "Which referrer information should be included.", CategoryRequestContext},
	{124, UserAgent, "String identifying the requesting application.", CategoryRequestContext},
	{125, Expect, "Expectations the server must meet to handle the request.", CategoryRequestContext},
	{126, MaxForwards, "Limits forwarding by proxies for TRACE requests.", CategoryRequestContext},

	{130, Allow, "Methods supported by the resource.", CategoryResponseContext},
	{131, Server, "Software used by the origin server.", CategoryResponseContext},
	{132, Date, "Date and time at which the message was originated.", CategoryResponseContext},
	{133, Link, "Relations between the resource and other resources.", CategoryResponseContext},

	{140, ContentSecurityPolicy, "Resources the user agent is allowed to load.", CategorySecurity},
	{141, CrossOriginOpenerPolicy, "Isolates the browsing context from cross-origin openers.", CategorySecurity},
	{142, StrictTransportSecurity, "Forces communication over HTTPS.", CategorySecurity},
	{143, XContentTypeOptions, "Disables MIME sniffing of the advertised content type.", CategorySecurity},
	{144, XFrameOptions, "Whether the page may be rendered inside a frame.", CategorySecurity},
	{145, XXSSProtection, "Legacy cross-site-scripting filter toggle.", CategorySecurity},
	{146, DNT, "User's tracking preference.", CategorySecurity},

	{150, TransferEncoding, "Encoding used to transfer the message body.", CategoryTransferCoding},
	{151, TE, "Transfer encodings the user agent will accept.", CategoryTransferCoding},
	{152, Trailer, "Fields present in the trailer of a chunked message.", CategoryTransferCoding},
	{153, Upgrade, "Protocols the sender would like to switch to.", CategoryTransferCoding},

	{160, RetryAfter, "How long to wait before making a follow-up request.", CategoryRateLimiting},
	{161, XRetryAfter, "Nonstandard form of Retry-After used by some services.", CategoryRateLimiting},
	{162, RateLimitLimit, "Request quota associated with the client.", CategoryRateLimiting},
	{163, RateLimitRemaining, "Remaining requests in the current quota window.", CategoryRateLimiting},
	{164, RateLimitReset, "Seconds until the quota window resets.", CategoryRateLimiting},
	{165, XRateLimitLimit, "Legacy form of RateLimit-Limit.", CategoryRateLimiting},
	{166, XRateLimitRemaining, "Legacy form of RateLimit-Remaining.", CategoryRateLimiting},
	{167, XRateLimitReset, "Legacy form of RateLimit-Reset.", CategoryRateLimiting},

	{170, XRequestID, "Identifier correlating one request across services.", CategoryExtension},
	{171, XCorrelationID, "Identifier correlating a chain of related requests.", CategoryExtension},
	{172, XAPIKey, "API key presented by the client.", CategoryExtension},
	{173, XPoweredBy, "Technology advertising header set by some frameworks.", CategoryExtension},
}
