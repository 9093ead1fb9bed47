package lang

// Starter returns the demo buffer loaded when a language is selected.
// Switching languages replaces the buffer with this text.
func Starter(l Language) string {
	switch l {
	case Java:
		return javaStarter
	case Cpp:
		return cppStarter
	default:
		return pythonStarter
	}
}

// Reset returns the minimal "enter your code" buffer for a language.
func Reset(l Language) string {
	switch l {
	case Java:
		return javaReset
	case Cpp:
		return cppReset
	default:
		return pythonReset
	}
}

const pythonStarter = `# 🚀 DSA Mentor - Real-time Analysis
def fibonacci_with_errors(n):
    """Calculate Fibonacci with intentional errors for demo"""
    # Error 1: No input validation
    if n <= 1:
        return n
    
    # Error 2: Nested loops (inefficient)
    for i in range(n):
        for j in range(n):
            pass  # Unnecessary nested loops
    
    prev, curr = 0, 1
    for i in range(2, n + 1):
        prev, curr = curr, prev + curr
    
    return curr

def binary_search_with_bugs(arr, target):
    """Binary search with common mistakes"""
    left, right = 0, len(arr) - 1
    
    while left <= right:
        mid = (left + right) // 2
        
        # Error 3: Assignment instead of comparison
        if arr[mid] = target:  # Should be ==
            return mid
        elif arr[mid] < target:
            left = mid + 1
        else:
            right = mid - 1
    
    return -1

def divide_with_risk(a, b):
    """Function with division by zero risk"""
    # Error 4: No zero check
    return a / b

def process_empty_list(items):
    """Function that will crash on empty input"""
    # Error 5: No bounds checking
    first = items[0]
    last = items[-1]
    return first + last

# Error 6: Missing parentheses
def syntax_error_demo():
    result = fibonacci_with_errors(10
    print(f"Result: {result}")

# Error 7: Wrong indentation
def indentation_error():
print("This line has wrong indentation")

# Test cases that will trigger errors
def main():
    # This will work
    fib_result = fibonacci_with_errors(5)
    
    # This will cause syntax error
    search_result = binary_search_with_bugs([1, 2, 3], 2)
    
    # This will cause division by zero
    div_result = divide_with_risk(10, 0)
    
    # This will cause index error
    empty_result = process_empty_list([])
    
    print(f"Results: {fib_result}, {search_result}, {div_result}, {empty_result}")

if __name__ == "__main__":
    main()
`

const javaStarter = `// 🚀 DSA Mentor - Java Analysis
public class DSAExample {
    
    public static int fibonacciWithErrors(int n) {
        // Error: No input validation
        if (n <= 1) {
            return n;
        }
        
        // Error: Inefficient nested loops
        for (int i = 0; i < n; i++) {
            for (int j = 0; j < n; j++) {
                // Unnecessary computation
            }
        }
        
        int prev = 0, curr = 1;
        for (int i = 2; i <= n; i++) {
            int temp = curr;
            curr = prev + curr;
            prev = temp;
        }
        
        return curr;
    }
    
    public static int binarySearchWithBugs(int[] arr, int target) {
        int left = 0, right = arr.length - 1;
        
        while (left <= right) {
            int mid = (left + right) / 2;
            
            // Error: Assignment instead of comparison
            if (arr[mid] = target) {  // Should be ==
                return mid;
            } else if (arr[mid] < target) {
                left = mid + 1;
            } else {
                right = mid - 1;
            }
        }
        
        return -1;
    }
    
    public static int divideWithRisk(int a, int b) {
        // Error: No zero check
        return a / b;
    }
    
    public static void main(String[] args) {
        int fib = fibonacciWithErrors(5);
        int[] arr = {1, 2, 3, 4, 5};
        int search = binarySearchWithBugs(arr, 3);
        int divide = divideWithRisk(10, 0);  // Division by zero
        
        System.out.println("Results: " + fib + ", " + search + ", " + divide);
    }
}`

const cppStarter = `// 🚀 DSA Mentor - C++ Analysis
#include <iostream>
#include <vector>

int fibonacciWithErrors(int n) {
    // Error: No input validation
    if (n <= 1) {
        return n;
    }
    
    // Error: Inefficient nested loops
    for (int i = 0; i < n; i++) {
        for (int j = 0; j < n; j++) {
            // Unnecessary computation
        }
    }
    
    int prev = 0, curr = 1;
    for (int i = 2; i <= n; i++) {
        int temp = curr;
        curr = prev + curr;
        prev = temp;
    }
    
    return curr;
}

int main() {
    int result = fibonacciWithErrors(5);
    std::cout << "Result: " << result << std::endl;
    return 0;
}`

const pythonReset = `# 🚀 Enter your Python code here
def solution():
    """
    Your algorithm implementation
    """
    pass

result = solution()
print(result)
`

const javaReset = `// 🚀 Enter your Java code here
public class Solution {
    public static void main(String[] args) {
        System.out.println("Hello, DSA Mentor!");
    }
}`

const cppReset = `// 🚀 Enter your C++ code here
#include <iostream>

int main() {
    std::cout << "Hello, DSA Mentor!" << std::endl;
    return 0;
}`
